package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS        = ""           // e.g. "example.com,example2.com"
	MYSQL_DSN          = ""           // MySQL will be used if this is set
	SQLITE_FILE        = "gallery.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS       = "0.0.0.0:8080"
	DEFAULT_BUCKET_DIR = "uploads" // Used for creating the initial disk bucket
	TMP_DIR            = "/tmp"    // Local copies of S3 objects during processing
	DEBUG_MODE         = true
	FACE_DETECT        = true     // Enable/disable face detection on upload
	FACE_MODELS_DIR    = "models" // dlib model files for the face detector
	MAX_UPLOAD_MB      = 16       // Max total size of a single upload request
	// Fixed account directory, "name:secret" pairs
	USERS = "BRIDGERS:64149002A,maminda:641490020,praise:64149002G"
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvBool("FACE_DETECT", &FACE_DETECT)
	readEnvString("FACE_MODELS_DIR", &FACE_MODELS_DIR)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvString("USERS", &USERS)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
