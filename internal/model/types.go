package model

import "time"

// LogFile is a rotated access log discovered in the log directory.
// Date is the calendar date embedded in the filename; it keys the report.
type LogFile struct {
	Path string
	Date time.Time
}

// Extraction is the (url, time) pair pulled out of one access-log line.
// Time is the request processing time in seconds.
type Extraction struct {
	URL  string
	Time float64
}

// URLStat is one row of the final report table. Shares (TimePerc,
// CountPerc) are relative to the selected top-K subset, not the whole log.
type URLStat struct {
	URL       string  `json:"url"`
	Count     int     `json:"count"`
	TimeSum   float64 `json:"time_sum"`
	TimeAvg   float64 `json:"time_avg"`
	TimeMax   float64 `json:"time_max"`
	TimeMed   float64 `json:"time_med"`
	TimePerc  float64 `json:"time_perc"`
	CountPerc float64 `json:"count_perc"`
}

// Report is the finished in-memory table handed to the renderer, the TUI
// and the HTTP layer. The core never formats or writes anything itself.
type Report struct {
	Date        time.Time
	Source      string // path of the analyzed log file
	Processed   int    // lines streamed
	Parsed      int    // lines that matched the extraction pattern
	ParsedShare float64
	Rows        []URLStat
}
