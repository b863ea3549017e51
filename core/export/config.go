package export

// Config holds settings for writing result sets.
type Config struct {
	// Dir is the local directory CSV and XLSX files are written to.
	Dir string `mapstructure:"dir" default:"exports"`
	// ObjectPrefix is the object storage prefix uploads are placed under.
	ObjectPrefix string `mapstructure:"object_prefix" default:"exports"`
	// TablePrefix names the database tables written by the relational export.
	TablePrefix string `mapstructure:"table_prefix" default:"reconcile"`
	// Workbook also writes an XLSX workbook when true.
	Workbook bool `mapstructure:"workbook" default:"true"`
}
