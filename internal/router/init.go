package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/config"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/approval"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/internal/container"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/rabbitmq"
	handlers "github.com/oksasatya/go-ddd-user-approval/internal/interface/http"
	"github.com/oksasatya/go-ddd-user-approval/internal/router/modules"
	"github.com/oksasatya/go-ddd-user-approval/pkg/helpers"
)

// Deps is everything the HTTP modules need. Nil Searcher disables search, nil Approvals
// makes POST /approvals answer 503, nil Redis disables rate limiting.
type Deps struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Users     repository.UserRepository
	Searcher  user.UserSearcher
	Runs      approval.RunStore
	Approvals handlers.ApprovalEnqueuer
	JWT       *helpers.JWTManager
	Redis     *redis.Client
}

// DepsFromContainer builds Deps from the singletons set by cmd/main.
func DepsFromContainer() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	d := Deps{
		Config: cfg,
		Logger: logger,
		JWT:    container.GetJWT(),
		Redis:  container.GetRedis(),
	}

	d.Users, d.Searcher = container.BuildUsers()
	d.Runs = container.BuildRuns()
	if pub := container.GetApprovalPub(); pub != nil {
		d.Approvals = rabbitmq.NewApprovalPublisher(pub)
	}
	return d
}

// InitModules wires use cases and handlers from d and registers every module.
func InitModules(r *Registry, d Deps) {
	create := user.NewCreateUser(d.Users, nil)
	get := user.NewGetUser(d.Users)

	userHandler := handlers.NewUserHandler(handlers.UserUseCases{
		Create: create,
		Get:    get,
		List:   user.NewListUsers(d.Users),
		Update: user.NewUpdateUser(d.Users, nil),
		Delete: user.NewDeleteUser(d.Users),
		Search: user.NewSearchUsers(d.Searcher),
	}, d.Logger)
	authHandler := handlers.NewAuthHandler(user.NewLogin(d.Users, d.JWT), get, d.Logger)
	approvalHandler := handlers.NewApprovalHandler(d.Approvals, d.Runs, d.Logger)

	r.Add(modules.NewAuthModule(authHandler, d.JWT, d.Redis))
	r.Add(modules.NewUserModule(userHandler, d.Redis))
	r.Add(modules.NewApprovalModule(approvalHandler, d.Redis))
	if d.Config == nil || d.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.Redis))
	}
}
