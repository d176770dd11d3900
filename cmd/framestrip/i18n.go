// Package main provides localization for the framestrip CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":    "出力先",
		"Composite": "合成",
		"Session":   "セッション",
		"Debug":     "デバッグ",
		"Logging":   "ログ",

		// Root command
		"Reduce a video's frames into one composite strip image": "動画のフレームを1枚の合成ストリップ画像にまとめる",
		"Each frame becomes one column (the mean of each row), or stays whole with -f. An image input is reshaped instead: each of its columns is one entry. Without -a an interactive preview lets you tune width and step before exporting.": "各フレームは1列（各行の平均）に縮約されます。-f を指定するとフレーム全体を使います。画像を入力すると、その各列を1要素として再構成します。-a を指定しない場合は、対話プレビューで幅とステップを調整してから書き出せます。",

		// Output flags
		"Output image path (png, jpg, gif, tif, bmp); without -o the first free out<N>.png is used": "出力画像のパス（png, jpg, gif, tif, bmp）。-o がない場合は空いている out<N>.png を使用",

		// Composite flags
		"Keep whole frames instead of reducing them to columns":                                        "フレームを列に縮約せず、そのまま使う",
		"Initial width in frames, fractional allowed (default: whole sequence)":                        "初期幅（フレーム数、小数可。デフォルト: 全体）",
		"Initial step through the sequence (default: 1)":                                               "初期ステップ（デフォルト: 1）",
		"Frames or columns to use as <start>:<end>; start inclusive, negative end counts from the end": "使用するフレームまたは列 <start>:<end>。start を含み、負の end は末尾から数える",
		"Frame reduction: row (one pixel per row) or pixel (one pixel per frame)":                      "フレームの縮約方法: row（行ごとに1ピクセル）または pixel（フレームごとに1ピクセル）",

		// Session flags
		"Render and export once without the interactive preview": "対話プレビューなしで一度だけ描画して書き出す",
		"YAML configuration file":                                "YAML設定ファイル",
		"Path to the ffmpeg executable":                          "ffmpeg 実行ファイルのパス",
		"Render workers (default: number of CPUs)":               "描画ワーカー数（デフォルト: CPU数）",
		"Write a Markdown session summary to this path":          "セッションのMarkdownサマリーをこのパスに書き出す",

		// Debug flags
		"Save intermediate results":                     "中間結果を保存する",
		"Directory for debug output (default: ./debug)": "デバッグ出力のディレクトリ（デフォルト: ./debug）",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "すべてのログ出力を抑制",

		// Messages
		"Error: %v":   "エラー: %v",
		"Interrupted": "中断されました",
	})
}
