package summarizer

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"framestrip Summary":    "framestrip サマリー",
		"Generated":             "生成日時",
		"Input":                 "入力",
		"Column Sequence":       "列シーケンス",
		"Parameters":            "パラメーター",
		"Exports":               "書き出し",
		"Item":                  "項目",
		"Value":                 "値",
		"File":                  "ファイル",
		"Kind":                  "種類",
		"Mode":                  "モード",
		"Codec":                 "コーデック",
		"Frame size":            "フレームサイズ",
		"Frames in container":   "コンテナのフレーム数",
		"Frame rate":            "フレームレート",
		"Columns":               "列数",
		"Column size":           "列サイズ",
		"Full scale":            "フルスケール",
		"Range":                 "範囲",
		"Reduction":             "縮約方法",
		"Width":                 "幅",
		"Step":                  "ステップ",
		"Initial":               "開始時",
		"Final":                 "終了時",
		"Nothing was exported.": "書き出しはありません。",
		"headless":              "ヘッドレス",
		"interactive":           "対話",
		"yes":                   "はい",
		"no":                    "いいえ",
	})
}
