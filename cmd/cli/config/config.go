package config

import "os"

const defaultAPIURL = "http://localhost:5000"

// APIURL returns the base URL for the course API.
// It can be overridden with the COURSE_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("COURSE_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// Email and Password are the default Basic-auth credentials
// (COURSE_API_EMAIL, COURSE_API_PASSWORD).
func Email() string {
	return os.Getenv("COURSE_API_EMAIL")
}

func Password() string {
	return os.Getenv("COURSE_API_PASSWORD")
}
