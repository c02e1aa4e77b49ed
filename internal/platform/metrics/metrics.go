package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered prometheus.Counter
	LoginFailures   prometheus.Counter
	ContactsCreated prometheus.Counter
	ContactsUpdated prometheus.Counter
	ContactsDeleted prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_users_registered_total",
			Help: "Total number of accounts registered.",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_login_failures_total",
			Help: "Total number of failed login attempts.",
		}),
		ContactsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_created_total",
			Help: "Total number of contacts created.",
		}),
		ContactsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_updated_total",
			Help: "Total number of contacts updated.",
		}),
		ContactsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_deleted_total",
			Help: "Total number of contacts deleted.",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonebook_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// NewForTest creates metrics on a private registry so parallel tests do not
// collide on duplicate registration.
func NewForTest() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_users_registered_total",
			Help: "Total number of accounts registered.",
		}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_login_failures_total",
			Help: "Total number of failed login attempts.",
		}),
		ContactsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_created_total",
			Help: "Total number of contacts created.",
		}),
		ContactsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_updated_total",
			Help: "Total number of contacts updated.",
		}),
		ContactsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_deleted_total",
			Help: "Total number of contacts deleted.",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonebook_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
