package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Reducing %s":                                "%s のフレームを縮約中",
		"Reshaping %s":                               "%s を再構成中",
		"Loaded %d columns of %dx%d":                 "%d 列 (%dx%d) を読み込みました",
		"Rendering width %.3f, step %.3f":            "幅 %.3f、ステップ %.3f で描画中",
		"Output saved to %s":                         "出力を %s に保存しました",
		"Summary saved to %s":                        "サマリーを %s に保存しました",
		"Interrupted, shutting down...":              "中断されました。シャットダウン中...",
		"Video %dx%d, %d frames, %.2f fps, codec %s": "動画 %dx%d、%d フレーム、%.2f fps、コーデック %s",

		// Decoder
		"Decoding %s with %s backend":                   "%s を %s バックエンドでデコード",
		"Built-in MPEG decoder rejected %s: %v":         "内蔵MPEGデコーダーが %s を扱えません: %v",
		"Probed %s: %dx%d, %d frames, codec %s":         "%s を解析: %dx%d、%d フレーム、コーデック %s",
		"MP4 probe failed, falling back to ffprobe: %v": "MP4の解析に失敗したため ffprobe を使用します: %v",

		// Reduce stage
		"Reducing frames": "フレームを縮約中",
		"Reducing frames %s of %d (%s reduction, full-scale %v)": "フレーム %s / %d を縮約 (%s 縮約、フルスケール %v)",
		"Reduced %d frames to %d columns of %dx%d":               "%d フレームを %d 列 (%dx%d) に縮約しました",

		// Reshape and resample stages
		"Reshaped %dx%d image into %d columns (full-scale %v)":   "%dx%d の画像を %d 列に再構成しました (フルスケール %v)",
		"Rendered %d columns (width %.3f, step %.3f) into %dx%d": "%d 列を描画 (幅 %.3f、ステップ %.3f): %dx%d",

		// Interactive session
		"Width %.3f, step %.3f, increment %g":             "幅 %.3f、ステップ %.3f、増分 %g",
		"Width increment %g":                              "幅の増分 %g",
		"Exported %s":                                     "%s に書き出しました",
		"Exported %s (width %.3f, step %.3f)":             "%s に書き出しました (幅 %.3f、ステップ %.3f)",
		"width %.3f  step %.3f  increment %g  columns %d": "幅 %.3f  ステップ %.3f  増分 %g  列数 %d",
		"full-scale":                                      "フルスケール",
		"a/d width  w/s step  [/] increment  q query  Enter export  Esc quit": "a/d 幅  w/s ステップ  [/] 増分  q 表示  Enter 書き出し  Esc 終了",

		// Warnings
		"%d frames differed in size and were scaled to %dx%d":  "%d フレームのサイズが異なるため %dx%d に拡縮しました",
		"No width given, using %g to cover the whole sequence": "幅が指定されていないため、全体を含む %g を使用します",
		"Cannot render width %.3f, step %.3f: %v":              "幅 %.3f、ステップ %.3f では描画できません: %v",
		"Failed to save debug sequence: %v":                    "デバッグ用の列画像を保存できませんでした: %v",
		"Failed to save debug parameters: %v":                  "デバッグ用のパラメーターを保存できませんでした: %v",
		"Failed to save debug render: %v":                      "デバッグ用の描画結果を保存できませんでした: %v",

		// Errors
		"Failed to load %s: %v":  "%s を読み込めませんでした: %v",
		"Invalid parameters: %v": "パラメーターが不正です: %v",
		"Cannot render: %v":      "描画できません: %v",
		"Export failed: %v":      "書き出しに失敗しました: %v",
	})
}
