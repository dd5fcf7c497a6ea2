package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/hummingbird/pkg/components"
	"github.com/decker502/hummingbird/pkg/config"
	"github.com/decker502/hummingbird/pkg/ecs"
	"github.com/decker502/hummingbird/pkg/entities"
	"github.com/decker502/hummingbird/pkg/game"
	"github.com/decker502/hummingbird/pkg/scene"
	"github.com/decker502/hummingbird/pkg/systems"
	"github.com/decker502/hummingbird/pkg/types"
	"github.com/decker502/hummingbird/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FlowerAreaScene 花区模拟场景
//
// 内置一只蜂鸟：每帧飞向最近的有花蜜的花朵，喙进入花蜜触发器后按速率取食。
// 所有花朵取空或回合超时后记录统计并重置花区。
type FlowerAreaScene struct {
	entityManager  *ecs.EntityManager
	graph          *scene.Graph
	flowerSystem   *systems.FlowerSystem
	areaSystem     *systems.FlowerAreaSystem
	colliderSystem *systems.ColliderSystem
	stats          *game.EpisodeStatsManager
	config         *config.FlowerAreaConfig

	areaID ecs.EntityID

	// 蜂鸟状态
	birdPosition mgl64.Vec3

	// 当前回合
	episodeTime    float64
	episodeNectar  float64
	episodeEmptied int

	// 渲染资源（首次 Draw 时创建）
	flowerDisc *ebiten.Image
	view       utils.TopDownView
}

// NewFlowerAreaScene 创建花区场景：搭建花区、扫描索引并开始第一个回合
//
// 参数:
//   - cfg: 花区配置
//   - layout: 花区布局
//   - stats: 回合统计管理器
//   - rng: 花株旋转使用的随机数源
func NewFlowerAreaScene(
	cfg *config.FlowerAreaConfig,
	layout entities.SampleAreaLayout,
	stats *game.EpisodeStatsManager,
	rng systems.RandomSource,
) (*FlowerAreaScene, error) {
	em := ecs.NewEntityManager()
	graph := scene.NewGraph(em)

	areaID, err := entities.NewSampleFlowerArea(graph, cfg, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to build flower area: %w", err)
	}

	flowerSystem := systems.NewFlowerSystem(em, graph, cfg.Flower)
	areaSystem := systems.NewFlowerAreaSystem(em, graph, graph, flowerSystem, cfg.PlantRotation, rng)
	if err := areaSystem.ScanArea(areaID); err != nil {
		return nil, err
	}

	s := &FlowerAreaScene{
		entityManager:  em,
		graph:          graph,
		flowerSystem:   flowerSystem,
		areaSystem:     areaSystem,
		colliderSystem: systems.NewColliderSystem(em, graph),
		stats:          stats,
		config:         cfg,
		areaID:         areaID,
	}
	if err := s.ResetEpisode(); err != nil {
		return nil, err
	}
	return s, nil
}

// FlowerSystem 返回花朵系统
func (s *FlowerAreaScene) FlowerSystem() *systems.FlowerSystem { return s.flowerSystem }

// AreaSystem 返回花区系统
func (s *FlowerAreaScene) AreaSystem() *systems.FlowerAreaSystem { return s.areaSystem }

// AreaID 返回花区实体
func (s *FlowerAreaScene) AreaID() ecs.EntityID { return s.areaID }

// PlaceBirdAtScreen 把蜂鸟移动到屏幕点击位置（保持当前高度）
// 首次 Draw 之前调用无效
func (s *FlowerAreaScene) PlaceBirdAtScreen(x, y int) {
	if s.view.Scale == 0 {
		return
	}
	s.birdPosition = s.view.ScreenToWorld(float64(x), float64(y), s.birdPosition.Y())
}

// ResetEpisode 重置花区并把蜂鸟放回中心上方
func (s *FlowerAreaScene) ResetEpisode() error {
	if err := s.areaSystem.ResetFlowers(s.areaID); err != nil {
		return fmt.Errorf("failed to reset episode: %w", err)
	}
	s.birdPosition = mgl64.Vec3{0, 2, 0}
	s.episodeTime = 0
	s.episodeNectar = 0
	s.episodeEmptied = 0
	return nil
}

// FeedAt 在喙尖位置取食
//
// 查询与喙尖重叠的激活花蜜触发器，反查所属花朵并取食 amount。
// 同时碰到多个触发器时只从第一朵花取食。
//
// 返回:
//   - float64: 取得的花蜜量，未碰到花蜜时为 0
//   - error: 触发器不属于本花区等内部错误
func (s *FlowerAreaScene) FeedAt(beak mgl64.Vec3, amount float64) (float64, error) {
	hits := s.colliderSystem.OverlapSphere(beak, s.config.Simulation.BeakRadius, types.ColliderTrigger)
	if len(hits) == 0 {
		return 0, nil
	}

	flowerID, err := s.areaSystem.GetFlowerFromNectar(s.areaID, hits[0])
	if err != nil {
		return 0, err
	}

	hadNectar := s.flowerSystem.HasNectar(flowerID)
	taken, err := s.flowerSystem.Feed(flowerID, amount)
	if err != nil {
		return 0, err
	}

	s.episodeNectar += taken
	if hadNectar && !s.flowerSystem.HasNectar(flowerID) {
		s.episodeEmptied++
	}
	return taken, nil
}

// allEmpty 花区内是否已没有花蜜
func (s *FlowerAreaScene) allEmpty() bool {
	for _, id := range s.areaSystem.Flowers(s.areaID) {
		if s.flowerSystem.HasNectar(id) {
			return false
		}
	}
	return true
}

// Update 推进模拟
func (s *FlowerAreaScene) Update(deltaTime float64) {
	sim := s.config.Simulation
	s.episodeTime += deltaTime

	if target, ok := s.areaSystem.NearestFlowerWithNectar(s.areaID, s.birdPosition); ok {
		if center, err := s.flowerSystem.CenterPosition(target); err == nil {
			s.birdPosition = moveTowards(s.birdPosition, center, sim.BirdSpeed*deltaTime)
		}
	}

	if _, err := s.FeedAt(s.birdPosition, sim.FeedRate*deltaTime); err != nil {
		log.Printf("[FlowerAreaScene] Feed failed: %v", err)
	}

	if s.allEmpty() || s.episodeTime >= sim.EpisodeSeconds {
		s.EndEpisode()
	}
}

// EndEpisode 记录当前回合统计并开始新回合
func (s *FlowerAreaScene) EndEpisode() {
	if s.stats != nil {
		s.stats.RecordEpisode(s.episodeNectar, s.episodeEmptied)
	}
	log.Printf("[FlowerAreaScene] Episode finished: nectar=%.3f emptied=%d time=%.1fs",
		s.episodeNectar, s.episodeEmptied, s.episodeTime)

	if err := s.ResetEpisode(); err != nil {
		log.Printf("[FlowerAreaScene] Reset failed: %v", err)
	}
}

// SaveOnExit 保存回合统计
func (s *FlowerAreaScene) SaveOnExit() bool {
	if s.stats == nil {
		return true
	}
	if err := s.stats.Save(); err != nil {
		log.Printf("[FlowerAreaScene] Failed to save stats: %v", err)
		return false
	}
	return true
}

// moveTowards 从 from 向 to 移动不超过 maxStep 的距离
func moveTowards(from, to mgl64.Vec3, maxStep float64) mgl64.Vec3 {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist <= maxStep || dist == 0 {
		return to
	}
	return from.Add(delta.Mul(maxStep / dist))
}

// 俯视图渲染参数
const (
	flowerDiscSize = 32
	viewMargin     = 1.1
	facingLength   = 0.6
)

// Draw 绘制花区俯视图（X/Z 平面）
func (s *FlowerAreaScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 34, G: 68, B: 34, A: 255})

	if s.flowerDisc == nil {
		s.flowerDisc = ebiten.NewImage(flowerDiscSize, flowerDiscSize)
		vector.DrawFilledCircle(s.flowerDisc, flowerDiscSize/2, flowerDiscSize/2, flowerDiscSize/2, color.White, true)
	}

	bounds := screen.Bounds()
	s.view = utils.NewTopDownView(float64(bounds.Dx()), float64(bounds.Dy()), s.config.AreaDiameter, viewMargin)

	for _, id := range s.areaSystem.Flowers(s.areaID) {
		center, err := s.flowerSystem.CenterPosition(id)
		if err != nil {
			continue
		}
		material, ok := ecs.GetComponent[*components.MaterialComponent](s.entityManager, id)
		if !ok {
			continue
		}

		// 花蜜越少花朵画得越小
		amount, _ := s.flowerSystem.NectarAmount(id)
		size := utils.Lerp(0.3, 0.6, utils.EaseOutQuad(amount/s.config.Flower.FullNectar))
		x, y := s.view.WorldToScreen(center)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-flowerDiscSize/2, -flowerDiscSize/2)
		op.GeoM.Scale(size, size)
		op.GeoM.Translate(x, y)
		op.ColorScale = material.ColorScale
		screen.DrawImage(s.flowerDisc, op)

		// 花朵朝向：从花心沿朝外方向画一小段
		if up, err := s.flowerSystem.UpVector(id); err == nil {
			tx, ty := s.view.WorldToScreen(center.Add(up.Mul(facingLength)))
			vector.StrokeLine(screen, float32(x), float32(y), float32(tx), float32(ty), 1, color.White, true)
		}
	}

	bx, by := s.view.WorldToScreen(s.birdPosition)
	vector.DrawFilledCircle(screen, float32(bx), float32(by), 5, color.RGBA{R: 80, G: 200, B: 255, A: 255}, true)

	st := game.EpisodeStats{}
	if s.stats != nil {
		st = s.stats.Stats()
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"episode nectar: %.2f  emptied: %d  time: %.1fs\nepisodes: %d  avg: %.2f  best: %.2f\nfeed mode: %s  [R] reset  [Space] end episode  [C] clear stats  [Click] move bird",
		s.episodeNectar, s.episodeEmptied, s.episodeTime,
		st.Episodes, st.AverageNectar(), st.BestEpisodeNectar,
		s.flowerSystem.FeedMode()))
}
