package scenes

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/decker502/hummingbird/pkg/config"
	"github.com/decker502/hummingbird/pkg/entities"
	"github.com/decker502/hummingbird/pkg/game"
	"github.com/decker502/hummingbird/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
)

func newTestScene(t *testing.T) (*FlowerAreaScene, *game.EpisodeStatsManager) {
	t.Helper()
	stats := game.NewEpisodeStatsManager(nil)
	s, err := NewFlowerAreaScene(
		config.DefaultFlowerAreaConfig(),
		entities.SampleAreaLayout{Plants: 2, FlowersPerPlant: 3, LooseFlowers: 1},
		stats,
		rand.New(rand.NewPCG(1, 2)),
	)
	if err != nil {
		t.Fatalf("NewFlowerAreaScene() error: %v", err)
	}
	return s, stats
}

func TestNewFlowerAreaScene(t *testing.T) {
	s, _ := newTestScene(t)

	flowers := s.AreaSystem().Flowers(s.AreaID())
	if len(flowers) != 7 {
		t.Fatalf("Flowers: got %d, want 7", len(flowers))
	}
	for _, id := range flowers {
		if !s.FlowerSystem().HasNectar(id) {
			t.Errorf("flower %d should be full after scene creation", id)
		}
	}
}

func TestFeedAt(t *testing.T) {
	s, _ := newTestScene(t)

	// 远离所有花朵
	taken, err := s.FeedAt(mgl64.Vec3{100, 100, 100}, 0.5)
	if err != nil || taken != 0 {
		t.Errorf("FeedAt far away: got (%v, %v), want (0, nil)", taken, err)
	}

	flower := s.AreaSystem().Flowers(s.AreaID())[0]
	center, _ := s.FlowerSystem().CenterPosition(flower)

	taken, err = s.FeedAt(center, 0.25)
	if err != nil {
		t.Fatalf("FeedAt() error: %v", err)
	}
	if taken != 0.25 {
		t.Errorf("taken: got %v, want 0.25", taken)
	}
	if s.episodeNectar != 0.25 {
		t.Errorf("EpisodeNectar: got %v, want 0.25", s.episodeNectar)
	}

	// 取空后触发器关闭，再次取食得到 0
	_, _ = s.FeedAt(center, 1)
	if s.FlowerSystem().HasNectar(flower) {
		t.Error("flower should be empty")
	}
	if taken, _ := s.FeedAt(center, 1); taken != 0 {
		t.Errorf("FeedAt on emptied flower: got %v, want 0", taken)
	}
}

// TestEpisodeRunsToCompletion 内置蜂鸟在回合时限内取空所有花朵
func TestEpisodeRunsToCompletion(t *testing.T) {
	s, stats := newTestScene(t)

	const dt = 1.0 / 60
	for i := 0; i < 60*60 && stats.Stats().Episodes == 0; i++ {
		s.Update(dt)
	}

	st := stats.Stats()
	if st.Episodes != 1 {
		t.Fatalf("Episodes: got %d, want 1", st.Episodes)
	}
	if st.FlowersEmptied != 7 {
		t.Errorf("FlowersEmptied: got %d, want 7", st.FlowersEmptied)
	}
	if math.Abs(st.NectarCollected-7) > 1e-6 {
		t.Errorf("NectarCollected: got %v, want 7", st.NectarCollected)
	}

	// 新回合已开始：花朵全部重置
	for _, id := range s.AreaSystem().Flowers(s.AreaID()) {
		if !s.FlowerSystem().HasNectar(id) {
			t.Errorf("flower %d should be refilled for the next episode", id)
		}
	}
	if s.episodeNectar != 0 {
		t.Errorf("EpisodeNectar after reset: got %v, want 0", s.episodeNectar)
	}

	if !s.SaveOnExit() {
		t.Error("SaveOnExit with nil gdata: got false, want true")
	}
}

func TestMoveTowards(t *testing.T) {
	got := moveTowards(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, 0}, 2)
	if !got.ApproxEqual(mgl64.Vec3{2, 0, 0}) {
		t.Errorf("partial step: got %v, want (2,0,0)", got)
	}
	got = moveTowards(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, 2)
	if !got.ApproxEqual(mgl64.Vec3{1, 0, 0}) {
		t.Errorf("overshoot: got %v, want (1,0,0)", got)
	}
}

func TestPlaceBirdAtScreen(t *testing.T) {
	s, _ := newTestScene(t)
	start := s.birdPosition

	// 尚未绘制，没有投影参数
	s.PlaceBirdAtScreen(10, 10)
	if s.birdPosition != start {
		t.Errorf("before first Draw: got %v, want unchanged %v", s.birdPosition, start)
	}

	s.view = utils.NewTopDownView(800, 800, 20, 1)
	s.PlaceBirdAtScreen(600, 200)
	want := mgl64.Vec3{5, start.Y(), -5}
	if !s.birdPosition.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("PlaceBirdAtScreen: got %v, want %v", s.birdPosition, want)
	}
}
