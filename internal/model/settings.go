package model

// Ключи настроек в таблице settings
const (
	SettingWorkStart    = "work_start"
	SettingWorkEnd      = "work_end"
	SettingPrepTime     = "prep_time"
	SettingBufferTime   = "buffer_time"
	SettingWorkPriority = "work_priority"
)

// Значения по умолчанию, когда настройка не задана
const (
	DefaultWorkStart  = "10:00"
	DefaultWorkEnd    = "20:00"
	DefaultPrepTime   = 0
	DefaultBufferTime = 0
)
