package models

// SystemConfig is a plain string key/value setting edited from the admin
// panel. Consumers parse the value and fall back to a hardcoded default
// when the key is absent or malformed.
type SystemConfig struct {
	ConfigKey   string `gorm:"primaryKey;type:varchar(50)" json:"config_key"`
	ConfigValue string `gorm:"type:varchar(100);not null" json:"config_value"`
	Description string `gorm:"type:varchar(200);not null" json:"description"`
}

func (SystemConfig) TableName() string { return "system_config" }
