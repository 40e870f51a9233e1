package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/config"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/approval"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-user-approval/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	mongoClient *mongodb.Client
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	approvalPub *helpers.RabbitPublisher
	emailPub    *helpers.RabbitPublisher
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config)                { cfg = c }
func GetConfig() *config.Config                 { return cfg }
func SetLogger(l *logrus.Logger)                { logger = l }
func SetMongo(c *mongodb.Client)                { mongoClient = c }
func GetMongo() *mongodb.Client                 { return mongoClient }
func SetRedis(r *redis.Client)                  { redisClient = r }
func GetRedis() *redis.Client                   { return redisClient }
func SetJWT(m *helpers.JWTManager)              { jwtManager = m }
func GetJWT() *helpers.JWTManager               { return jwtManager }
func SetES(c *elasticsearch.Client)             { esClient = c }
func GetES() *elasticsearch.Client              { return esClient }
func SetApprovalPub(p *helpers.RabbitPublisher) { approvalPub = p }
func GetApprovalPub() *helpers.RabbitPublisher  { return approvalPub }
func SetEmailPub(p *helpers.RabbitPublisher)    { emailPub = p }
func GetEmailPub() *helpers.RabbitPublisher     { return emailPub }

func GetLogger() *logrus.Logger {
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}

// BuildUsers returns the user repository for the configured storage driver, decorated with
// the search index when search is enabled and an ES client is set. The searcher is nil
// when search is off. Call it once per process: memory storage is per call.
func BuildUsers() (repository.UserRepository, user.UserSearcher) {
	var users repository.UserRepository
	if mongoClient != nil && cfg != nil && !cfg.UsesMemoryStorage() {
		users = mongodb.NewUserRepository(mongoClient)
	} else {
		users = memory.NewUserRepository()
	}
	if esClient == nil || cfg == nil || !cfg.SearchEnabled {
		return users, nil
	}
	users = search.NewIndexingUserRepository(users, esClient, cfg.ESUsersIndex, GetLogger())
	return users, search.NewSearcher(esClient, cfg.ESUsersIndex)
}

// BuildRuns keeps run records in redis when a client is set, otherwise in process memory.
func BuildRuns() approval.RunStore {
	if redisClient == nil || cfg == nil {
		return memory.NewRunStore()
	}
	return redisstore.NewRunStore(redisClient, cfg.ApprovalRunTTL)
}
