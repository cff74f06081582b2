package config

import "os"

type Config struct {
	ServerPort        string
	TesseractDataPath string
	RecognitionAPIURL string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	recognitionAPIURL := os.Getenv("RECOGNITION_API_URL")
	if recognitionAPIURL == "" {
		recognitionAPIURL = "http://recognition:8866/parse/invoice"
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		RecognitionAPIURL: recognitionAPIURL,
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
	}
}
