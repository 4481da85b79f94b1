package config

var DefaultConfig Config
var DefaultTheme Theme
var DefaultRaster RasterTheme

func init() {
	DefaultTheme = Theme{
		UseGridLines: true,
		ShowLabels:   true,
		Colors: ConfigColors{
			BoardColor: 180,
			BlackColor: 232,
			WhiteColor: 255,
			LineColor:  94,
			LabelDark:  232,
			LabelLight: 255,
		},
		Symbols: ConfigSymbols{
			BlackStone: '●',
			WhiteStone: '●',
			StarPoint:  '◦',
		},
	}

	DefaultRaster = RasterTheme{
		BoardWidth:  400,
		BoardHeight: 400,
		ScoreWidth:  200,
		ScoreHeight: 150,
		Background:  "#DCB579",
		Line:        "#000000",
		BlackInner:  "#666666",
		BlackOuter:  "#000000",
		WhiteInner:  "#FFFFFF",
		WhiteOuter:  "#CCCCCC",
		ScoreText:   "#000000",
		ScoreFontPx: 18,
	}

	DefaultConfig = Config{
		Theme:  DefaultTheme,
		Raster: DefaultRaster,
		Replay: ReplayConfig{
			FrameDelayMs: 1000,
		},
		GnuGo: GnuGoConfig{
			Path:             "gnugo",
			DefaultBoardSize: 5,
			DefaultKomi:      2.5,
			DefaultLevel:     5,
		},
	}
}
