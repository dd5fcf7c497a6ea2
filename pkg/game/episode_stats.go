package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// EpisodeStats 训练回合统计（跨运行累计）
type EpisodeStats struct {
	Episodes          int     `yaml:"episodes"`          // 已完成回合数
	NectarCollected   float64 `yaml:"nectarCollected"`   // 累计取得的花蜜量
	FlowersEmptied    int     `yaml:"flowersEmptied"`    // 累计取空的花朵数
	BestEpisodeNectar float64 `yaml:"bestEpisodeNectar"` // 单回合最多花蜜量
	LastEpisodeNectar float64 `yaml:"lastEpisodeNectar"` // 最近一回合的花蜜量
}

// AverageNectar 平均每回合花蜜量
func (s EpisodeStats) AverageNectar() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return s.NectarCollected / float64(s.Episodes)
}

// 存储路径常量
const (
	statsObject   = "stats"
	statsProperty = "episodes"
)

// EpisodeStatsManager 回合统计管理器
// 负责统计的累计、加载和保存
type EpisodeStatsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	stats        EpisodeStats
}

// NewEpisodeStatsManager 创建回合统计管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式，仅内存统计）
//
// 加载失败不影响创建，统计从零开始。
func NewEpisodeStatsManager(gdataManager *gdata.Manager) *EpisodeStatsManager {
	m := &EpisodeStatsManager{gdataManager: gdataManager}
	if err := m.Load(); err != nil {
		log.Printf("[EpisodeStatsManager] Warning: Failed to load stats: %v (starting from zero)", err)
	}
	return m
}

// Load 从 gdata 加载统计
// gdataManager 为 nil 或尚无存档时统计清零
func (m *EpisodeStatsManager) Load() error {
	m.stats = EpisodeStats{}

	if m.gdataManager == nil {
		return nil
	}
	if !m.gdataManager.ObjectPropExists(statsObject, statsProperty) {
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(statsObject, statsProperty)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	var loaded EpisodeStats
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	m.stats = loaded
	log.Printf("[EpisodeStatsManager] Stats loaded: %d episodes", loaded.Episodes)
	return nil
}

// Save 保存统计到 gdata
// gdataManager 为 nil 时直接返回 nil
func (m *EpisodeStatsManager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&m.stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(statsObject, statsProperty, data); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// RecordEpisode 记录一个回合的结果（仅修改内存，需调用 Save 持久化）
//
// 参数：
//   - nectar: 本回合取得的花蜜量
//   - emptied: 本回合取空的花朵数
func (m *EpisodeStatsManager) RecordEpisode(nectar float64, emptied int) {
	m.stats.Episodes++
	m.stats.NectarCollected += nectar
	m.stats.FlowersEmptied += emptied
	m.stats.LastEpisodeNectar = nectar
	if nectar > m.stats.BestEpisodeNectar {
		m.stats.BestEpisodeNectar = nectar
	}
}

// Stats 返回当前统计（值拷贝）
func (m *EpisodeStatsManager) Stats() EpisodeStats {
	return m.stats
}

// Reset 清零统计（仅修改内存）
func (m *EpisodeStatsManager) Reset() {
	m.stats = EpisodeStats{}
}
