package respond

import (
	"regexp"
)

var (
	// Bearerトークンパターン（JWTがエラーメッセージに混入する場合）
	bearerTokenPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+`)

	// Webhook URLパターン（パス部分にシークレットを含むため）
	webhookURLPattern = regexp.MustCompile(`https://hooks\.[^\s"]+`)

	// データベース・SMTPパスワードパターン（DSN内）
	dsnPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// トークンのマスク
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")

	// Webhook URLのマスク
	msg = webhookURLPattern.ReplaceAllString(msg, "https://hooks.****")

	// DSNパスワードのマスク
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
