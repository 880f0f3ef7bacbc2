package types

// Category classifies an export event.
type Category string

const (
	CategoryConfiguration   Category = "Configuration"
	CategoryCreateDirectory Category = "CreateDirectory"
	CategoryInclude         Category = "Include"
	CategoryExclude         Category = "Exclude"
	CategoryCopy            Category = "Copy"
	CategoryVerify          Category = "Verify"
	CategorySummary         Category = "Summary"
)

// NopSink discards every event.
type NopSink struct{}

// Log implements EventSink.
func (NopSink) Log(Category, string) {}
