package config

// Settings is the immutable process configuration. It is built once in main
// and handed to every component that needs it; nothing reads the environment
// after startup.
type Settings struct {
	ProjectName string
	Port        string

	JWTSecret             string
	AccessTokenExpMinutes int
	VerificationExpiryHrs int
	EmitDebugTokens       bool
	AllowOpenPropertyMgmt bool
	FrontendBaseURL       string
	CORSOrigins           string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	SupportEmail string
}

// LoadSettings reads the environment into a Settings value.
func LoadSettings() *Settings {
	return &Settings{
		ProjectName: GetEnv("PROJECT_NAME", "Easy Estates"),
		Port:        GetEnv("PORT", "8000"),

		JWTSecret:             GetEnv("JWT_SECRET", "changeme"),
		AccessTokenExpMinutes: GetIntEnv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 60),
		VerificationExpiryHrs: GetIntEnv("VERIFICATION_EXPIRY_HOURS", 24),
		EmitDebugTokens:       GetBoolEnv("EMIT_DEBUG_TOKENS", false),
		AllowOpenPropertyMgmt: GetBoolEnv("ALLOW_OPEN_PROPERTY_MANAGEMENT", false),
		FrontendBaseURL:       GetEnv("FRONTEND_BASE_URL", "http://localhost:5173"),
		CORSOrigins:           GetEnv("CORS_ORIGINS", "http://localhost:5173"),

		SMTPHost:     GetEnv("SMTP_HOST", ""),
		SMTPPort:     GetEnv("SMTP_PORT", "587"),
		SMTPUsername: GetEnv("SMTP_USERNAME", ""),
		SMTPPassword: GetEnv("SMTP_PASSWORD", ""),
		MailFrom:     GetEnv("MAIL_FROM", ""),
		SupportEmail: GetEnv("SUPPORT_EMAIL", ""),
	}
}
