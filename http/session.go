package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"heartbeats/nav"
)

// SessionStore 保存每个访客当前所在的页面。容量有限，最久未访问的会话会被淘汰，
// 被淘汰或未知的会话从首页开始。
type SessionStore struct {
	views      *lru.Cache[string, nav.View]
	cookieName string
}

// NewSessionStore 创建会话存储
func NewSessionStore(capacity int, cookieName string) (*SessionStore, error) {
	cache, err := lru.New[string, nav.View](capacity)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &SessionStore{views: cache, cookieName: cookieName}, nil
}

// Resolve 返回请求所属的会话ID和当前页面；没有有效cookie时签发新的会话
func (s *SessionStore) Resolve(w http.ResponseWriter, r *http.Request) (string, nav.View) {
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			if view, ok := s.views.Get(cookie.Value); ok {
				return cookie.Value, view
			}
			return cookie.Value, nav.Default
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nav.Default
}

// Save 记录会话的当前页面
func (s *SessionStore) Save(id string, view nav.View) {
	s.views.Add(id, view)
}

// Len 返回当前保存的会话数
func (s *SessionStore) Len() int {
	return s.views.Len()
}
