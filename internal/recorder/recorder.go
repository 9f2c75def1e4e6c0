package recorder

// SpinEvent holds everything worth keeping about one settled spin.
type SpinEvent struct {
	SessionID     string
	Number        int
	Color         string
	SeismoScore   int
	SeismoTier    string
	TotalStaked   float64
	RoundProfit   float64
	BankrollAfter float64
}

// SettlementEvent records one strategy's result against one spin.
type SettlementEvent struct {
	SessionID  string
	Spin       int
	Strategy   string
	Status     string // "WIN", "LOSS" or "INACTIVE"
	Stake      int
	Confidence float64
	Profit     float64
}

// AlertEvent records a raised table alert.
type AlertEvent struct {
	SessionID string
	Kind      string
	Priority  string
	Message   string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSpin(evt *SpinEvent) error
	RecordSettlement(evt *SettlementEvent) error
	RecordAlert(evt *AlertEvent) error
	Close() error
}
