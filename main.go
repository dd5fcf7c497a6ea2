package main

import (
	"flag"
	"log"
	"time"

	"github.com/decker502/hummingbird/pkg/app"
	"github.com/decker502/hummingbird/pkg/embedded"
	"github.com/decker502/hummingbird/pkg/entities"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	configPath = flag.String("config", "", "外部花区配置文件（默认使用嵌入配置）")
	plants     = flag.Int("plants", 5, "花株数量")
	flowers    = flag.Int("flowers", 3, "每个花株上的花朵数量")
	loose      = flag.Int("loose", 3, "容器节点下的散花数量")
	seed       = flag.Uint64("seed", 0, "随机种子（0 表示使用当前时间）")
	noSave     = flag.Bool("nosave", false, "不保存回合统计")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Layout:     entities.SampleAreaLayout{Plants: *plants, FlowersPerPlant: *flowers, LooseFlowers: *loose},
		Seed:       s,
		Persist:    !*noSave,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Hummingbird - Flower Area")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
