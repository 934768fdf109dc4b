package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created",
		},
	)

	PostsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_deleted_total",
			Help: "Total number of posts deleted",
		},
	)

	PostListRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "post_list_requests_total",
			Help: "Total number of post list requests",
		},
	)

	StoredUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_users",
			Help: "Number of users currently held in the in-memory store",
		},
	)

	StoredPosts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_posts",
			Help: "Number of posts currently held in the in-memory store",
		},
	)
)
