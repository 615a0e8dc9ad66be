package logger

import (
	"regexp"
	"strings"
)

const masked = "***MASKED***"

// センシティブなキーのパターン（大文字小文字を区別しない）
var sensitiveKeyPatterns = []string{
	"password",
	"token",
	"api_key",
	"apikey",
	"secret",
	"github_token",
	"linear_api_key",
	"authorization",
	"auth",
	"credential",
	"access_token",
	"client_secret",
}

// sensitivePrefix は値のプレフィックスとその後に続く本体のパターン
type sensitivePrefix struct {
	prefix  string
	pattern *regexp.Regexp
}

// センシティブな値のパターン。マスク時にはprefixを残す
var sensitivePrefixes = []sensitivePrefix{
	// Linear personal API keys
	{"lin_api_", regexp.MustCompile(`^lin_api_[A-Za-z0-9]{32,}$`)},
	// Linear OAuth access tokens
	{"lin_oauth_", regexp.MustCompile(`^lin_oauth_[A-Za-z0-9]{32,}$`)},
	// GitHub personal access tokens
	{"ghp_", regexp.MustCompile(`^ghp_[A-Za-z0-9]{36,}$`)},
	// GitHub Actions / app tokens
	{"ghs_", regexp.MustCompile(`^ghs_[A-Za-z0-9]{36,}$`)},
	// GitHub fine-grained tokens
	{"github_pat_", regexp.MustCompile(`^github_pat_[A-Za-z0-9_]{36,}$`)},
	// Authorization Bearer tokens
	{"Bearer ", regexp.MustCompile(`(?i)^Bearer\s+[A-Za-z0-9\-_\.]{20,}$`)},
}

// SanitizeValue は値がセンシティブかどうかを判定し、必要に応じてマスクする
func SanitizeValue(value interface{}) interface{} {
	if isSensitiveValue(value) {
		return maskValue(value)
	}
	return value
}

// SanitizeKeyValue はキーと値の組み合わせをチェックし、センシティブな情報をマスクする
func SanitizeKeyValue(key string, value interface{}) (string, interface{}) {
	if isSensitiveKey(key) {
		if isSensitiveValue(value) {
			return key, maskValue(value)
		}
		return key, masked
	}

	if isSensitiveValue(value) {
		return key, maskValue(value)
	}

	return key, value
}

// SanitizeArgs はログ引数（key-valueペア）をサニタイズする
func SanitizeArgs(args ...interface{}) []interface{} {
	if len(args) == 0 {
		return args
	}

	sanitized := make([]interface{}, len(args))
	copy(sanitized, args)

	// 偶数インデックスがkey、奇数インデックスがvalue
	for i := 0; i < len(sanitized)-1; i += 2 {
		if key, ok := sanitized[i].(string); ok {
			_, sanitizedValue := SanitizeKeyValue(key, sanitized[i+1])
			sanitized[i+1] = sanitizedValue
		}
	}

	return sanitized
}

// isSensitiveKey はキーがセンシティブかどうかを判定する
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	for _, pattern := range sensitiveKeyPatterns {
		if lowerKey == pattern ||
			strings.HasPrefix(lowerKey, pattern+"_") ||
			strings.HasSuffix(lowerKey, "_"+pattern) ||
			strings.Contains(lowerKey, "_"+pattern+"_") {
			return true
		}
	}

	return false
}

// isSensitiveValue は値がセンシティブかどうかを判定する
func isSensitiveValue(value interface{}) bool {
	str, ok := value.(string)
	if !ok || str == "" {
		return false
	}

	for _, p := range sensitivePrefixes {
		if p.pattern.MatchString(str) {
			return true
		}
	}

	return false
}

// maskValue はセンシティブな値をマスクする（プレフィックスを保持）
func maskValue(value interface{}) string {
	str, ok := value.(string)
	if !ok || str == "" {
		return masked
	}

	for _, p := range sensitivePrefixes {
		if strings.HasPrefix(str, p.prefix) {
			return p.prefix + masked
		}
	}

	return masked
}
