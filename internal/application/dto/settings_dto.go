package dto

// SettingRequest body para POST /api/config.
type SettingRequest struct {
	Key   string `json:"config_key"`
	Value string `json:"config_value"`
}
