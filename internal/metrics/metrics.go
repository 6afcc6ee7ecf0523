package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	EXPGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEXPGranted,
			Help: HelpTextEXPGranted,
		},
		[]string{LabelSource},
	)

	GoldGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoldGranted,
			Help: HelpTextGoldGranted,
		},
		[]string{LabelSource},
	)

	TasksByOutcome = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksByOutcome,
			Help: HelpTextTasksByOutcome,
		},
		[]string{LabelOutcome},
	)

	MissionsByOutcome = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMissionsByOutcome,
			Help: HelpTextMissionsByOutcome,
		},
		[]string{LabelOutcome},
	)

	DungeonRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDungeonRuns,
			Help: HelpTextDungeonRuns,
		},
		[]string{LabelStatus, LabelGrade},
	)

	LevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
		[]string{LabelSource},
	)

	AchievementsUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
	)

	ForgeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameForgeOperations,
			Help: HelpTextForgeOperations,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCollaboratorFailures,
			Help: HelpTextCollaboratorFailures,
		},
		[]string{LabelCollaborator},
	)

	ScheduledRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScheduledRuns,
			Help: HelpTextScheduledRuns,
		},
		[]string{LabelJob, LabelOutcome},
	)

	ScheduledItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScheduledItems,
			Help: HelpTextScheduledItems,
		},
		[]string{LabelJob},
	)
)
