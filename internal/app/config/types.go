package config

type (
	InternalConfig struct {
		App App
		JWT JWT
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}

	App struct {
		Env                       string
		Port                      string
		Version                   string
		Timezone                  string
		EndpointPrefix            string
		MaxRequests               int
		ShutdownTimeout           int
		RequestTimeoutInSeconds   int
		LockWaitBudgetInMillis    int
		LockExpirationInSeconds   int
		RawPayloadArchiveDisabled bool
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port       string
		Host       string
		Username   string
		Password   string
		EventQueue string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		UseSSL     bool
		BucketName string
	}
	JWT struct {
		Secret string
	}
)
