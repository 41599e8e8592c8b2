package domain

// DetailLevel — вариант кэшируемой AI-интерпретации
type DetailLevel string

const (
	DetailLevelBasic    DetailLevel = "basic"
	DetailLevelDetailed DetailLevel = "detailed"
)

// DetailLevels — все поддерживаемые уровни (порядок важен для инвалидации)
var DetailLevels = []DetailLevel{DetailLevelBasic, DetailLevelDetailed}

func (d DetailLevel) IsValid() bool {
	switch d {
	case DetailLevelBasic, DetailLevelDetailed:
		return true
	}
	return false
}

func (d DetailLevel) String() string {
	return string(d)
}
