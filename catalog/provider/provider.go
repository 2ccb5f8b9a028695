// Package provider 目录实体数据源（只读）
package provider

import (
	"context"
	"sync"
	"time"

	"vehicle-catalog-api/models"

	"golang.org/x/sync/errgroup"
)

// Provider 目录实体数据源
type Provider interface {
	Brands(ctx context.Context) ([]models.Brand, error)
	Models(ctx context.Context) ([]models.Model, error)
	Generations(ctx context.Context) ([]models.Generation, error)
	EquipmentAssignments(ctx context.Context) ([]models.EquipmentAssignment, error)
}

// Snapshot 一次加载的全部目录列表
type Snapshot struct {
	Brands      []models.Brand
	Models      []models.Model
	Generations []models.Generation
	Equipment   []models.EquipmentAssignment
}

// Load 从数据源并发加载快照
func Load(ctx context.Context, p Provider) (*Snapshot, error) {
	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snapshot.Brands, err = p.Brands(gctx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Models, err = p.Models(gctx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Generations, err = p.Generations(gctx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Equipment, err = p.EquipmentAssignments(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// StaticProvider 内存数据源
type StaticProvider struct {
	Data Snapshot
}

func (p *StaticProvider) Brands(context.Context) ([]models.Brand, error) {
	return p.Data.Brands, nil
}

func (p *StaticProvider) Models(context.Context) ([]models.Model, error) {
	return p.Data.Models, nil
}

func (p *StaticProvider) Generations(context.Context) ([]models.Generation, error) {
	return p.Data.Generations, nil
}

func (p *StaticProvider) EquipmentAssignments(context.Context) ([]models.EquipmentAssignment, error) {
	return p.Data.Equipment, nil
}

// CachedProvider 带有效期的快照缓存
type CachedProvider struct {
	inner    Provider
	ttl      time.Duration
	now      func() time.Time
	mutex    sync.Mutex
	snapshot *Snapshot
	loadedAt time.Time
}

// NewCachedProvider 创建缓存数据源；ttl<=0 时每次都重新加载
func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Snapshot 获取快照，过期或失效后重新加载
func (c *CachedProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.snapshot != nil && c.ttl > 0 && c.now().Sub(c.loadedAt) < c.ttl {
		return c.snapshot, nil
	}

	snapshot, err := Load(ctx, c.inner)
	if err != nil {
		return nil, err
	}
	c.snapshot = snapshot
	c.loadedAt = c.now()
	return snapshot, nil
}

// Invalidate 丢弃缓存，下次读取时重新加载
func (c *CachedProvider) Invalidate() {
	c.mutex.Lock()
	c.snapshot = nil
	c.mutex.Unlock()
}

func (c *CachedProvider) Brands(ctx context.Context) ([]models.Brand, error) {
	s, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Brands, nil
}

func (c *CachedProvider) Models(ctx context.Context) ([]models.Model, error) {
	s, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Models, nil
}

func (c *CachedProvider) Generations(ctx context.Context) ([]models.Generation, error) {
	s, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Generations, nil
}

func (c *CachedProvider) EquipmentAssignments(ctx context.Context) ([]models.EquipmentAssignment, error) {
	s, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Equipment, nil
}
