package models

// Counter is the atomic per-(kind, day) sequence document backing identifier
// minting. Sequence is only ever moved by $inc, never by read-then-write.
type Counter struct {
	ID       string `json:"id,omitempty" bson:"_id,omitempty"`
	Kind     string `json:"kind" bson:"kind"`
	DayKey   string `json:"dayKey" bson:"dayKey"`
	Sequence int64  `json:"sequence" bson:"sequence"`
}
