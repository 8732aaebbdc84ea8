package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/handson-platform/handson-backend/utils"
)

// RateLimiter limits requests per client IP. It prefers the shared Redis
// store so limits hold across replicas, falling back to an in-process
// store when Redis is unavailable.
func RateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	var store limiter.Store
	if utils.RedisClient != nil {
		redisStore, err := redisstore.NewStoreWithOptions(utils.RedisClient, limiter.StoreOptions{
			Prefix: "ratelimit",
		})
		if err != nil {
			log.Printf("redis rate limit store unavailable, using memory store: %v", err)
			store = memory.NewStore()
		} else {
			store = redisStore
		}
	} else {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
