package models

// ThemeColor 主题颜色，以整数代码持久化
type ThemeColor int

const (
	ThemeColorRed ThemeColor = iota
	ThemeColorGreen
	ThemeColorBlue
	ThemeColorPurple
)

// ThemeColorFromCode 根据代码返回主题颜色，未知代码回退为红色
func ThemeColorFromCode(code int) ThemeColor {
	switch code {
	case 1:
		return ThemeColorGreen
	case 2:
		return ThemeColorBlue
	case 3:
		return ThemeColorPurple
	default:
		return ThemeColorRed
	}
}

func (c ThemeColor) String() string {
	switch c {
	case ThemeColorGreen:
		return "GREEN"
	case ThemeColorBlue:
		return "BLUE"
	case ThemeColorPurple:
		return "PURPLE"
	default:
		return "RED"
	}
}

// ThemeMode 主题模式（亮色/暗色），以整数代码持久化
type ThemeMode int

const (
	ThemeModeLight ThemeMode = iota
	ThemeModeDark
)

// ThemeModeFromCode 根据代码返回主题模式，未知代码回退为亮色
func ThemeModeFromCode(code int) ThemeMode {
	if code == 1 {
		return ThemeModeDark
	}
	return ThemeModeLight
}

func (m ThemeMode) String() string {
	if m == ThemeModeDark {
		return "DARK"
	}
	return "LIGHT"
}

// ThemePreferences 用户主题偏好
type ThemePreferences struct {
	Color ThemeColor `json:"color"`
	Mode  ThemeMode  `json:"mode"`
}

// DefaultThemePreferences 默认主题偏好（红色 + 亮色）
func DefaultThemePreferences() ThemePreferences {
	return ThemePreferences{Color: ThemeColorRed, Mode: ThemeModeLight}
}
