package cronpal

import "sync"

// 缓存大小限制，避免内存无限增长
var maxCacheSize = 1000

// scheduleCache 提供了一个线程安全的表达式解析结果缓存
// 使用 LRU (最近最少使用) 算法管理缓存
// Schedule 不可变，缓存命中时共享同一实例是安全的
type scheduleCache struct {
	cache       map[string]*Schedule // 表达式到解析结果的映射
	accessOrder []string             // 访问顺序，用于LRU淘汰
	mu          sync.RWMutex         // 读写锁，保护缓存
}

// 全局缓存实例，按解析器选项类型分别缓存
var (
	parseCaches     = make(map[ParseOption]*scheduleCache)
	parseCachesLock sync.RWMutex
)

// getCacheForParser 获取或创建特定解析器类型的缓存
func getCacheForParser(p Parser) *scheduleCache {
	parseCachesLock.RLock()
	cache, exists := parseCaches[p.options]
	parseCachesLock.RUnlock()

	if !exists {
		parseCachesLock.Lock()
		// 双重检查，避免竞态条件
		if cache, exists = parseCaches[p.options]; !exists {
			cache = &scheduleCache{
				cache:       make(map[string]*Schedule),
				accessOrder: make([]string, 0, maxCacheSize),
			}
			parseCaches[p.options] = cache
		}
		parseCachesLock.Unlock()
	}

	return cache
}

// parseWithCache 尝试从缓存中获取解析结果，如果不存在则解析并缓存
func parseWithCache(p Parser, expr string) (*Schedule, error) {
	cache := getCacheForParser(p)

	// 尝试从缓存中读取
	cache.mu.RLock()
	if s, found := cache.cache[expr]; found {
		cache.mu.RUnlock()

		// 获取写锁并更新访问顺序
		cache.mu.Lock()
		// 再次检查，因为可能在获取写锁期间已被其他协程修改
		if _, stillExists := cache.cache[expr]; stillExists {
			cache.updateAccessOrder(expr)
		}
		cache.mu.Unlock()

		return s, nil
	}
	cache.mu.RUnlock()

	// 缓存未命中，解析表达式
	s, err := p.parse(expr)
	if err != nil {
		return nil, err
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	// 检查缓存是否已满
	if len(cache.cache) >= maxCacheSize {
		// 移除最久未访问的项
		oldest := cache.accessOrder[0]
		delete(cache.cache, oldest)
		cache.accessOrder = cache.accessOrder[1:]
	}

	cache.cache[expr] = s
	cache.accessOrder = append(cache.accessOrder, expr)

	return s, nil
}

// updateAccessOrder 更新访问顺序，将指定项移到访问顺序的末尾
// 注意：调用前必须获取写锁
func (sc *scheduleCache) updateAccessOrder(expr string) {
	var pos int
	for i, s := range sc.accessOrder {
		if s == expr {
			pos = i
			break
		}
	}

	sc.accessOrder = append(sc.accessOrder[:pos], sc.accessOrder[pos+1:]...)
	sc.accessOrder = append(sc.accessOrder, expr)
}
