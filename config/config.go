package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var loaded bool

// Config lấy giá trị biến môi trường, ưu tiên file .env
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Không tìm thấy file .env, dùng biến môi trường hệ thống")
		}
		loaded = true
	}
	return os.Getenv(key)
}

// ConfigOr trả về fallback nếu biến môi trường trống
func ConfigOr(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}

// ConfigInt parse biến môi trường dạng số
func ConfigInt(key string, fallback int) int {
	v := Config(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Giá trị %s không hợp lệ (%q), dùng mặc định %d", key, v, fallback)
		return fallback
	}
	return n
}
