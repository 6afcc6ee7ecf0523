package config

// DefaultEnvFile is the optional dotenv file read before the environment
const DefaultEnvFile = ".env"
