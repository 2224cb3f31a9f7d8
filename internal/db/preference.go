package db

import "gorm.io/gorm"

// 预置的偏好键
const (
	PreferenceKeyFocusAreas = "focus_areas"
)

// Preference 以键值行存放用户偏好，UserID + Key 唯一。
// focus_areas 的值为逗号拼接的小写语境标签。
type Preference struct {
	gorm.Model
	UserID uint   `gorm:"index:idx_preference_user_key,unique"`
	Key    string `gorm:"size:64;index:idx_preference_user_key,unique"`
	Value  string
}
