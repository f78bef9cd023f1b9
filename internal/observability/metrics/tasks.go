package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TaskOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "task_operations_total",
		Help: "Total number of task operations by operation and result",
	},
	[]string{"operation", "result"},
)
