package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK     = "ok"
	outcomeFailed = "failed"
	outcomeMissed = "missing"
)

var (
	memberSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studyhub",
		Name:      "member_sync_total",
		Help:      "Member projection writes by operation, role and outcome.",
	}, []string{"operation", "role", "outcome"})

	reconcileChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studyhub",
		Name:      "member_reconcile_changes_total",
		Help:      "Member rows changed by reconcile runs.",
	}, []string{"change"})
)
