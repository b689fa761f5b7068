package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scoring paths recorded on ResumeAnalyses and JobParses.
const (
	PathModel    = "model"
	PathFallback = "fallback"
	PathDegraded = "degraded"
)

var (
	JobParses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_matcher_job_parses_total",
			Help: "Total number of job descriptions parsed, by scoring path",
		},
		[]string{"path"},
	)

	ResumeAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_matcher_resume_analyses_total",
			Help: "Total number of resumes analyzed, by scoring path",
		},
		[]string{"path"},
	)

	OverallScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_matcher_overall_score",
			Help:    "Distribution of final candidate scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "resume_matcher_batch_duration_seconds",
			Help: "Duration of a full batch analysis in seconds",
		},
	)

	SessionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_matcher_sessions_processed_total",
			Help: "Total number of analysis sessions handled by the worker, by final status",
		},
		[]string{"status"},
	)
)
