package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ClubKeyPrefix = "club:%s"
	PostKeyPrefix = "post:%d"
)

const (
	ClubTTL = 10 * time.Minute
	PostTTL = 30 * time.Minute
)

func ClubKey(slug string) string {
	return fmt.Sprintf(ClubKeyPrefix, slug)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateClub(ctx context.Context, slug string) {
	Invalidate(ctx, ClubKey(slug))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
