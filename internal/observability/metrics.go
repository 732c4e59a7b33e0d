package observability

const (
	MUsecaseRequests     MetricKey = "usecase_requests_total"
	MUsecaseDuration     MetricKey = "usecase_duration_seconds"
	MHTTPRequests        MetricKey = "http_requests_total"
	MHTTPRequestDuration MetricKey = "http_request_duration_seconds"
	MPaymentsProcessed   MetricKey = "payments_processed_total"
	MReportDenials       MetricKey = "report_access_denied_total"
	MStockNotifications  MetricKey = "stock_notifications_total"
)
