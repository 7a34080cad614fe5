package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wolfitem/ai-writer/internal/domain/model"
	"github.com/wolfitem/ai-writer/internal/infrastructure/logger"
)

// contentTypeProfiles 五种内容类型画像，按10篇轮换周期分配占比
var contentTypeProfiles = map[model.ContentAngle]model.ContentTypeProfile{
	model.AngleMarketNews: {
		Name:                "市场快讯",
		Angle:               model.AngleMarketNews,
		TargetPercent:       30,
		PreferredCategories: []string{"investing", "market-trends", "economy"},
	},
	model.AngleContrarianOpinion: {
		Name:                "反向观点",
		Angle:               model.AngleContrarianOpinion,
		TargetPercent:       25,
		PreferredCategories: []string{"investing", "personal-finance", "retirement"},
	},
	model.AnglePracticalTips: {
		Name:                "实用技巧",
		Angle:               model.AnglePracticalTips,
		TargetPercent:       20,
		PreferredCategories: []string{"saving", "budgeting", "personal-finance"},
	},
	model.AngleProductReview: {
		Name:                "产品评测",
		Angle:               model.AngleProductReview,
		TargetPercent:       15,
		PreferredCategories: []string{"banking", "credit-cards", "tools"},
	},
	model.AngleCaseStudy: {
		Name:                "案例研究",
		Angle:               model.AngleCaseStudy,
		TargetPercent:       10,
		PreferredCategories: []string{"debt", "side-hustle", "retirement"},
	},
}

// Rotator 定义话题与内容类型轮换器接口
type Rotator interface {
	// SelectTopic 选择下一篇文章的话题与内容类型画像
	SelectTopic() (model.Topic, model.ContentTypeProfile)
	// CyclePosition 返回当前轮换计数在10篇周期中的位置
	CyclePosition() int
}

// rotator 实现Rotator接口。
// 轮换计数由实例自身持有，由调用方构造并传递，不使用进程级全局变量
type rotator struct {
	mu      sync.Mutex
	counter int
	topics  []model.Topic
	rng     *rand.Rand
}

// NewRotator 创建一个新的话题轮换器。
// topics 必须为非空目录（空目录在配置加载阶段即被拒绝）
func NewRotator(topics []model.Topic) Rotator {
	return NewRotatorWithState(topics, 0, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewRotatorWithState 使用指定的起始计数和随机源创建轮换器，便于测试复现
func NewRotatorWithState(topics []model.Topic, counter int, rng *rand.Rand) Rotator {
	return &rotator{
		counter: counter,
		topics:  topics,
		rng:     rng,
	}
}

// BucketForPosition 返回10篇周期中指定位置对应的内容类型角度。
// 位置0-2为市场快讯，3-5为反向观点，6-7为实用技巧，8为产品评测，9为案例研究
func BucketForPosition(position int) model.ContentAngle {
	switch {
	case position <= 2:
		return model.AngleMarketNews
	case position <= 5:
		return model.AngleContrarianOpinion
	case position <= 7:
		return model.AnglePracticalTips
	case position == 8:
		return model.AngleProductReview
	default:
		return model.AngleCaseStudy
	}
}

// ProfileForAngle 返回指定角度的内容类型画像
func ProfileForAngle(angle model.ContentAngle) model.ContentTypeProfile {
	return contentTypeProfiles[angle]
}

// SelectTopic 选择下一篇文章的话题与内容类型画像
func (r *rotator) SelectTopic() (model.Topic, model.ContentTypeProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 递增轮换计数并计算周期位置
	r.counter++
	position := r.counter % 10
	angle := BucketForPosition(position)
	profile := contentTypeProfiles[angle]

	logger.Debug("选题轮换", "counter", r.counter, "cycle_position", position, "angle", string(angle))

	// 用画像的偏好分类过滤话题目录
	candidates := r.filterByCategories(profile.PreferredCategories)

	// 过滤结果为空时，降级为按优先级加权的随机抽取
	if len(candidates) == 0 {
		logger.Debug("偏好分类无匹配话题，使用优先级加权抽取", "angle", string(angle))
		candidates = r.drawByPriority()
	}

	// 在最终候选集中均匀随机选择
	topic := candidates[r.rng.Intn(len(candidates))]

	// 将画像附加到话题对象上供下游消费
	topic.Profile = &profile

	logger.Info("选题完成",
		"topic_id", topic.ID,
		"title", topic.Title,
		"category", topic.Category,
		"content_type", profile.Name)

	return topic, profile
}

// CyclePosition 返回当前轮换计数在10篇周期中的位置
func (r *rotator) CyclePosition() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counter % 10
}

// filterByCategories 按偏好分类过滤话题目录
func (r *rotator) filterByCategories(categories []string) []model.Topic {
	var filtered []model.Topic
	for _, topic := range r.topics {
		for _, category := range categories {
			if topic.Category == category {
				filtered = append(filtered, topic)
				break
			}
		}
	}
	return filtered
}

// drawByPriority 按优先级加权抽取候选话题。
// 60%概率取高优先级，30%取中优先级，10%取低优先级，空档位顺延
func (r *rotator) drawByPriority() []model.Topic {
	byPriority := map[string][]model.Topic{}
	for _, topic := range r.topics {
		byPriority[topic.Priority] = append(byPriority[topic.Priority], topic)
	}

	roll := r.rng.Float64()
	var order []string
	switch {
	case roll < 0.6:
		order = []string{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}
	case roll < 0.9:
		order = []string{model.PriorityMedium, model.PriorityHigh, model.PriorityLow}
	default:
		order = []string{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}
	}

	// 跳过空档位，保证总能返回非空集合
	for _, priority := range order {
		if len(byPriority[priority]) > 0 {
			return byPriority[priority]
		}
	}
	return r.topics
}
