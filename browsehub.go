// Package browsehub is the metadata-caching layer behind the source-browsing
// front-end. It maps hierarchical identifiers (user/repo/solution/file-path)
// onto filesystem-resident artifacts and caches derived summary objects as
// sidecar files next to the directories they describe. Service is the public
// facade; the cache protocol itself lives in internal/cache.
package browsehub

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/browse-hub/browse-hub/internal/cache"
	"github.com/browse-hub/browse-hub/internal/config"
	"github.com/browse-hub/browse-hub/internal/ident"
	"github.com/browse-hub/browse-hub/internal/logging"
	"github.com/browse-hub/browse-hub/internal/page"
	"github.com/browse-hub/browse-hub/internal/storage"
	"github.com/browse-hub/browse-hub/internal/version"
)

// Options 描述构造 Service 所需的全部配置；字段与 config.toml 对应项一致。
type Options struct {
	// StorageRoot 是所有缓存状态共用的存储根目录。
	StorageRoot string
	// FreshFor 为 sidecar 新鲜度阈值，零值回退到 24 小时。
	FreshFor time.Duration
	// Logger 为可选的结构化日志器，缺省使用 logrus 标准日志器。
	Logger logrus.FieldLogger
}

// Service 是消费者唯一的入口：所有摘要读取与文件视图装配都经由它。
type Service struct {
	layout   storage.Layout
	accessor *cache.Accessor
	log      logrus.FieldLogger
}

// New 构造 Service 并确保存储根目录存在。
func New(opts Options) (*Service, error) {
	layout, err := storage.NewLayout(opts.StorageRoot)
	if err != nil {
		return nil, err
	}

	if opts.FreshFor <= 0 {
		opts.FreshFor = 24 * time.Hour
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	log.WithFields(logging.BaseFields("service_start", "")).
		WithField("version", version.Full()).
		WithField("storage", layout.Root()).
		Info("summary cache ready")

	return &Service{
		layout:   layout,
		accessor: cache.NewAccessor(layout, opts.FreshFor, log),
		log:      log,
	}, nil
}

// NewFromConfig 读取 TOML 配置文件并完成日志器与 Service 的装配。
func NewFromConfig(configPath string) (*Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.InitLogger(*cfg)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logging.BaseFields("config_loaded", configPath)).Debug("configuration applied")

	return New(Options{
		StorageRoot: cfg.StoragePath,
		FreshFor:    cfg.CacheTTL.DurationValue(),
		Logger:      logger,
	})
}

// User 返回用户摘要；协议细节见 internal/cache。绝不返回错误，最坏情况
// 是一份略旧或刚重建的摘要。
func (s *Service) User(name string) *UserSummary {
	return s.accessor.User(name)
}

// Repo 返回仓库摘要。
func (s *Service) Repo(user, repo string) *RepoSummary {
	return s.accessor.Repo(user, repo)
}

// Solution 返回 solution 摘要，元数据缺失时 Info 为 nil。
func (s *Service) Solution(user, repo, solution string) *SolutionSummary {
	return s.accessor.Solution(user, repo, solution)
}

// File 解析完整标识符并经由生成器装配文件级视图。与摘要读取不同，
// 文件视图属于缓存核心之外的装配层，失败会以错误形式返回。
func (s *Service) File(id string, gen Generator) (*FileView, error) {
	return page.BuildFileView(s.accessor, s.layout, gen, ident.Parse(id))
}

// StorageRoot 返回解析后的存储根绝对路径，供宿主应用拼接展示用链接。
func (s *Service) StorageRoot() string {
	return s.layout.Root()
}

// Version 返回构建期注入的版本信息。
func Version() string {
	return version.Full()
}
