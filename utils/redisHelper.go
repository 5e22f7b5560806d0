package utils

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/dayflowhq/dayflow_backend/config"
)

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

// get type name of struct
func GetTypeName[T any]() string {
	var v T
	return reflect.TypeOf(v).Name()
}

/* Redis object cache, keyed "<TypeName>:<id>" */

func StoreRedis[T any](obj any, id int) error {
	key := fmt.Sprintf("%s:%d", GetTypeName[T](), id)
	return config.SetRedisObject(key, obj, GetCacheLifespan())
}

func RetrieveRedis[T any](id int) (*T, error) {
	key := fmt.Sprintf("%s:%d", GetTypeName[T](), id)
	var obj T
	exists, err := config.GetRedisObject(key, &obj)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return &obj, nil
}

func RemoveRedis[T any](id int) error {
	key := fmt.Sprintf("%s:%d", GetTypeName[T](), id)
	return config.RemoveRedisKey(key)
}
