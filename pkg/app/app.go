// Package app 提供花区查看器的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载配置、打开统计存储、
// 搭建花区场景并实现 ebiten.Game 接口。
package app

import (
	"image/color"
	"io"
	"log"
	"math/rand/v2"

	"github.com/decker502/hummingbird/pkg/config"
	"github.com/decker502/hummingbird/pkg/embedded"
	"github.com/decker502/hummingbird/pkg/entities"
	"github.com/decker502/hummingbird/pkg/game"
	"github.com/decker502/hummingbird/pkg/scenes"
	"github.com/decker502/hummingbird/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 逻辑屏幕尺寸
const (
	WindowWidth  = 800
	WindowHeight = 800
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部花区配置文件，为空则使用嵌入的配置
	ConfigPath string
	// Layout 花区布局
	Layout entities.SampleAreaLayout
	// Seed 随机种子
	Seed uint64
	// Persist 是否通过 gdata 保存回合统计
	Persist bool
}

// App 是查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	flowerScene  *scenes.FlowerAreaScene
	stats        *game.EpisodeStatsManager
}

// NewApp 创建并初始化查看器
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	areaConfig := loadAreaConfig(cfg.ConfigPath)

	// 统计持久化；gdata 不可用时降级为仅内存统计
	var gdataManager *gdata.Manager
	if cfg.Persist {
		m, err := gdata.Open(gdata.Config{AppName: "hummingbird"})
		if err != nil {
			log.Printf("[App] Warning: gdata unavailable, stats will not be saved: %v", err)
		} else {
			gdataManager = m
		}
	}
	stats := game.NewEpisodeStatsManager(gdataManager)

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1|1))
	flowerScene, err := scenes.NewFlowerAreaScene(areaConfig, cfg.Layout, stats, rng)
	if err != nil {
		return nil, err
	}
	flowerScene.FlowerSystem().Verbose = cfg.Verbose

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(flowerScene)
	log.Printf("[App] Flower area ready: %d flowers, feed mode %s",
		len(flowerScene.AreaSystem().Flowers(flowerScene.AreaID())), areaConfig.Flower.FeedMode)

	return &App{
		sceneManager: sceneManager,
		flowerScene:  flowerScene,
		stats:        stats,
	}, nil
}

// loadAreaConfig 加载花区配置
// 优先外部文件，其次嵌入数据，都失败时使用默认值
func loadAreaConfig(path string) *config.FlowerAreaConfig {
	if path != "" {
		cfg, err := config.LoadFlowerAreaConfig(path)
		if err == nil {
			return cfg
		}
		log.Printf("[App] Failed to load %s: %v", path, err)
	}

	if !embedded.Exists(config.FlowerAreaConfigPath) {
		log.Printf("[App] No embedded %s, using defaults", config.FlowerAreaConfigPath)
		return config.DefaultFlowerAreaConfig()
	}
	data, err := embedded.ReadFile(config.FlowerAreaConfigPath)
	if err != nil {
		log.Printf("[App] Embedded config unavailable, using defaults: %v", err)
		return config.DefaultFlowerAreaConfig()
	}
	cfg, err := config.LoadFlowerAreaConfigFromBytes(data)
	if err != nil {
		log.Printf("[App] Invalid embedded config, using defaults: %v", err)
		return config.DefaultFlowerAreaConfig()
	}
	return cfg
}

// Update 更新模拟
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.sceneManager.SaveCurrent()
		return ebiten.Termination
	}

	// R: 重置花区，Space: 立即结束当前回合，C: 清空统计，点击: 移动蜂鸟
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.flowerScene.ResetEpisode(); err != nil {
			log.Printf("[App] Reset failed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.flowerScene.EndEpisode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.ClearStats()
	}
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		a.flowerScene.PlaceBirdAtScreen(x, y)
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时用黑色填充 letterbox 并使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// ClearStats 清空累计回合统计并立即保存
func (a *App) ClearStats() {
	a.stats.Reset()
	if err := a.stats.Save(); err != nil {
		log.Printf("[App] Failed to save cleared stats: %v", err)
	}
	log.Printf("[App] Stats cleared")
}
