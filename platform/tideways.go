package platform

import (
	"decommission/base/utils"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// PHP clients send servers[0]=a&servers[1]=b
var indexedServersKey = regexp.MustCompile(`^servers\[(\d+)\]$`)

type deleteResponse struct {
	RemovedServers int `json:"removed_servers"`
}

type applicationItem struct {
	Name string `json:"name"`
}

type handlers struct {
	store *Store
}

func authenticator(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "invalid token"})
			return
		}
		c.Next()
	}
}

func (h *handlers) applications(c *gin.Context) {
	if c.Param("app") != "applications" {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Error: "not found"})
		return
	}
	items := []applicationItem{}
	for _, name := range h.store.Applications(c.Param("org")) {
		items = append(items, applicationItem{Name: name})
	}
	c.JSON(http.StatusOK, items)
}

func (h *handlers) servers(c *gin.Context) {
	servers, raw, ok := h.store.Servers(c.Param("org"), c.Param("app"))
	if !ok {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Error: "application not found"})
		return
	}
	if raw != nil {
		c.Data(http.StatusOK, gin.MIMEJSON, raw)
		return
	}
	c.JSON(http.StatusOK, servers)
}

func (h *handlers) deleteServers(c *gin.Context) {
	// net/http parses form bodies only for POST, PUT and PATCH
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}
	form, err := url.ParseQuery(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid form body"})
		return
	}
	ids := formServers(form)
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "no servers given"})
		return
	}

	removed, ok := h.store.Remove(c.Param("org"), c.Param("app"), ids)
	if !ok {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Error: "application not found"})
		return
	}
	utils.LogInfo("application", c.Param("app"), "requested", len(ids), "removed", removed, "Servers removed")
	c.JSON(http.StatusOK, deleteResponse{RemovedServers: removed})
}

// formServers collects ids of servers[], servers and servers[N] keys
func formServers(form url.Values) []string {
	ids := append([]string{}, form["servers[]"]...)
	ids = append(ids, form["servers"]...)

	type indexed struct {
		idx int
		id  string
	}
	var items []indexed
	for key, values := range form {
		match := indexedServersKey.FindStringSubmatch(key)
		if match == nil || len(values) == 0 {
			continue
		}
		idx, _ := strconv.Atoi(match[1])
		items = append(items, indexed{idx: idx, id: values[0]})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].idx < items[j].idx })
	for _, item := range items {
		ids = append(ids, item.id)
	}

	result := []string{}
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			result = append(result, id)
		}
	}
	return result
}
