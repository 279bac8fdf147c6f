package models

// ContactConfigKey is the config row holding the serialized contact info.
const ContactConfigKey = "contact"

// ConfigEntry is a generic key/value row. Values are opaque to the store.
type ConfigEntry struct {
	Key   string `gorm:"primaryKey" json:"key" csv:"key"`
	Value string `gorm:"type:text" json:"value" csv:"value"`
}

// TableName pins the table name used by every backend.
func (ConfigEntry) TableName() string {
	return "config"
}
