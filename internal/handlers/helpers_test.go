package handlers

import "time"

// noopMetrics satisfies the metrics contract without touching the
// Prometheus registry, which only tolerates a single registration per
// process.
type noopMetrics struct{}

func (noopMetrics) RecordTransactionMutation(operation, transactionType string) {}
func (noopMetrics) RecordDashboardRequest(duration time.Duration)               {}
func (noopMetrics) RecordExport(format, status string)                          {}
func (noopMetrics) RecordAuthEvent(event, status string)                        {}
func (noopMetrics) RecordUploadStored(kind string)                              {}
