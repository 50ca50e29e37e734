package util

// Storage backends for the key/value adapter.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageMySQL  = "mysql"
	StorageRedis  = "redis"
	StorageMinio  = "minio"
)

// Keys of the records kept in the key/value store.
const (
	KeyLearnerPrefix        = "learner/"
	KeyCredentialPrefix     = "credential/"
	KeyQuizSessionPrefix    = "quizSession/"
	KeyCompletedTasksPrefix = "completedTasks/"
	KeyNotifications        = "notifications"
)
