package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyMinuteDBType string = "MINUTE_DB_TYPE"
	EnvKeyMinuteDbPath string = "MINUTE_DB_PATH"
	EnvKeyMinuteDbDSN  string = "MINUTE_DB_DSN"

	EnvKeyMinuteHttpHostPort string = "MINUTE_HTTP_HOST_PORT"
	EnvKeyMinuteGrpcHostPort string = "MINUTE_GRPC_HOST_PORT"

	EnvKeyMinuteDefaultRate  string = "MINUTE_DEFAULT_RATE"
	EnvKeyMinuteDefaultBurst string = "MINUTE_DEFAULT_BURST"

	EnvKeyMinuteSeedDemo string = "MINUTE_SEED_DEMO"

	EnvKeyMinuteLogDir        string = "MINUTE_LOG_DIR"
	EnvKeyMinuteLogMaxSizeMB  string = "MINUTE_LOG_MAX_SIZE_MB"
	EnvKeyMinuteLogMaxBackups string = "MINUTE_LOG_MAX_BACKUPS"

	LoggerNamePolicyCore    string = "policy_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameEventHub      string = "event_hub"
	LoggerNameSeed          string = "seed"

	LoggerFieldCategory      string = "category"
	LoggerCategoryChild      string = "child"
	LoggerCategoryControl    string = "control"
	LoggerCategorySchedule   string = "schedule"
	LoggerCategoryAlert      string = "alert"
	LoggerFieldChildID       string = "child_id"
	LoggerFieldCommand       string = "command"
	LoggerFieldRemoteAddress string = "remote_addr"
)
