package entities

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ApprovalFunnel struct {
	Pending        int `json:"pending"`
	ApprovedUnpaid int `json:"approved_unpaid"`
	ApprovedPaid   int `json:"approved_paid"`
	Cancelled      int `json:"cancelled"`
}

type DashboardSummary struct {
	TotalReservationsToday    int            `json:"total_reservations_today"`
	TotalReservationsThisWeek int            `json:"total_reservations_this_week"`
	TotalCancellationsToday   int            `json:"total_cancellations_today"`
	PendingApprovals          int            `json:"pending_approvals"`
	CurrentlyParked           int            `json:"currently_parked"`
	DailyReservations         []DailyCount   `json:"daily_reservations"`
	PaymentDistribution       map[string]int `json:"payment_distribution"`
	ApprovalFunnel            ApprovalFunnel `json:"approval_funnel"`
}
