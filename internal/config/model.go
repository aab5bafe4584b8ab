package config

import "github.com/ItsNotGoodName/thriveremoteos/internal/wm"

var defaultConfig = Config{
	Viewport: Viewport{
		Width:  1280,
		Height: 800,
		Chrome: 60,
	},
	Limits: Limits{
		MinWidth:         wm.DefaultLimits.MinWidth,
		MinHeight:        wm.DefaultLimits.MinHeight,
		ZFloor:           wm.DefaultLimits.ZFloor,
		MobileBreakpoint: wm.DefaultLimits.MobileBreakpoint,
	},
	Apps: []App{
		{Key: "ai-job-links", Title: "AI Job Links Portal", Icon: "🤖", Content: "AIJobLinksPortal", Width: 420, Height: 315},
		{Key: "ai-career", Title: "AI Career Portal", Icon: "🎭", Content: "WaitressJobPortal", Width: 350, Height: 245},
		{Key: "useful-links", Title: "Useful Links", Icon: "🔗", Content: "UsefulLinks", Width: 350, Height: 280},
		{Key: "content-manager", Title: "Content Manager", Icon: "📝", Content: "CompactCMS", Width: 300, Height: 245},
		{Key: "calculator", Title: "Calculator", Icon: "🧮", Content: "CalculatorApp", Width: 210, Height: 280},
		{Key: "system-status", Title: "System Status", Icon: "📊", Content: "SystemStatusApp", Width: 350, Height: 245},
		{Key: "virtual-pets", Title: "Virtual Pets Hub", Icon: "🐾", Content: "VirtualPetsHub", Width: 245, Height: 175},
		{Key: "notepad", Title: "Text Atelier", Icon: "edit_note", Content: "NotepadApp", Width: 245, Height: 175},
		{Key: "vault", Title: "File Vault", Icon: "folder_open", Content: "VaultApp", Width: 245, Height: 175},
		{Key: "weather", Title: "Weather", Icon: "🌤️", Content: "ProfessionalWeatherWidget", Width: 350, Height: 280},
		{Key: "downloads", Title: "Download Manager", Icon: "⬇️", Content: "ProfessionalDownloadManager", Width: 350, Height: 280},
		{Key: "terminal", Title: "Quantum Terminal", Icon: "💻", Content: "QuantumTerminal", Width: 420, Height: 315},
		{Key: "music", Title: "Music Player", Icon: "🎵", Content: "LuxuryMusicPlayer", Width: 350, Height: 280},
		{Key: "natural-wonders", Title: "UK Natural Wonders", Icon: "🏞️", Content: "UKNaturalWondersViewer", Width: 420, Height: 315},
		{Key: "settings", Title: "System Settings", Icon: "settings", Content: "ProfessionalSettings", Width: 350, Height: 280},
	},
	Shortcuts: map[string]string{
		"jobs":       "ai-job-links",
		"calculator": "calculator",
		"pets":       "virtual-pets",
		"links":      "useful-links",
		"settings":   "settings",
	},
}

type Config struct {
	Viewport  Viewport          `json:"viewport" yaml:"viewport"`
	Limits    Limits            `json:"limits" yaml:"limits"`
	Apps      []App             `json:"apps" yaml:"apps"`
	Shortcuts map[string]string `json:"shortcuts" yaml:"shortcuts"` // ?app=<name> -> app key
}

// Viewport is assumed until the browser reports its own.
type Viewport struct {
	Width  int  `json:"width" yaml:"width"`
	Height int  `json:"height" yaml:"height"`
	Chrome int  `json:"chrome" yaml:"chrome"`
	Mobile bool `json:"mobile" yaml:"mobile"`
}

func (v Viewport) WM() wm.Viewport {
	return wm.Viewport{
		Width:  v.Width,
		Height: v.Height,
		Chrome: v.Chrome,
		Mobile: v.Mobile,
	}
}

type Limits struct {
	MinWidth         int `json:"min_width" yaml:"min_width"`
	MinHeight        int `json:"min_height" yaml:"min_height"`
	ZFloor           int `json:"z_floor" yaml:"z_floor"`
	MobileBreakpoint int `json:"mobile_breakpoint" yaml:"mobile_breakpoint"`
}

func (l Limits) WM() wm.Limits {
	return wm.Limits{
		MinWidth:         l.MinWidth,
		MinHeight:        l.MinHeight,
		ZFloor:           l.ZFloor,
		MobileBreakpoint: l.MobileBreakpoint,
	}
}

type App struct {
	Key     string `json:"key" yaml:"key"`
	Title   string `json:"title" yaml:"title"`
	Icon    string `json:"icon" yaml:"icon"`
	Content string `json:"content" yaml:"content"`
	Width   int    `json:"width" yaml:"width"`
	Height  int    `json:"height" yaml:"height"`
}
