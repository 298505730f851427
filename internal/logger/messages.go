package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Single file
		"Encoded %s to %s (%d bytes)":  "%s を %s にエンコードしました (%d バイト)",
		"Decoded %s: %dx%d, alpha=%v":  "%s をデコードしました: %dx%d, アルファ=%v",
		"Using %s backend, %s":         "%s バックエンドを使用: %s",
		"Verified %s: %dx%d":           "%s を検証しました: %dx%d",
		"Loaded configuration from %s": "%s から設定を読み込みました",

		// Batch
		"Converting %d files with %d workers": "%d ファイルを %d ワーカーで変換中",
		"Converted %d/%d files":               "%d/%d ファイルを変換しました",
		"Skipping %s: %s":                     "%s をスキップします: %s",
		"Interrupted, shutting down...":       "中断されました。シャットダウン中...",

		// Errors
		"Failed to convert %s: %s": "%s の変換に失敗しました: %s",
		"Failed to write %s: %s":   "%s の書き込みに失敗しました: %s",
	})
}
