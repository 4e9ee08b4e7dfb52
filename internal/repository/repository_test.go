package repository

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_SequentialIDs(t *testing.T) {
	r := NewRepository()

	for i := 1; i <= 5; i++ {
		u := r.CreateUser("user"+strconv.Itoa(i), "pw")
		assert.Equal(t, strconv.Itoa(i), u.ID)
		assert.NotNil(t, u.Projects)
	}
}

func TestCreateUser_OverwriteKeepsCount(t *testing.T) {
	r := NewRepository()

	alice := r.CreateUser("alice", "pw1")
	require.Equal(t, "1", alice.ID)

	// one stored username, so the overwrite gets id 2
	again := r.CreateUser("alice", "pw2")
	assert.Equal(t, "2", again.ID)

	// still one stored username, so bob also gets id 2
	bob := r.CreateUser("bob", "pw")
	assert.Equal(t, "2", bob.ID)

	carol := r.CreateUser("carol", "pw")
	assert.Equal(t, "3", carol.ID)

	got, err := r.FindUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "pw2", got.Password)
}

func TestCreateUser_OverwriteDropsProjects(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw")
	require.NoError(t, r.CreateProject("alice", "site"))

	r.CreateUser("alice", "pw")
	projects, err := r.ListProjects("alice")
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestFindUserByToken(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw")
	r.CreateUser("bob", "pw")

	u, err := r.FindUserByToken("2")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = r.FindUserByToken("3")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = r.FindUserByToken("")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindUserByToken_StaleTokenAfterOverwrite(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw")
	r.CreateUser("alice", "pw")

	_, err := r.FindUserByToken("1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	u, err := r.FindUserByToken("2")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestFindUserByToken_DuplicateIDEarliestUsernameWins(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw") // 1
	r.CreateUser("bob", "pw")   // 2
	r.CreateUser("bob", "pw")   // 3
	r.CreateUser("alice", "pw") // 3

	u, err := r.FindUserByToken("3")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = r.FindUserByToken("2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUploadFiles_Merge(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw")
	require.NoError(t, r.CreateProject("alice", "site"))

	require.NoError(t, r.UploadFiles("alice", "site", map[string]string{"a": "1"}))
	require.NoError(t, r.UploadFiles("alice", "site", map[string]string{"b": "2"}))

	projects, err := r.ListProjects("alice")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, projects["site"].Files)

	require.NoError(t, r.UploadFiles("alice", "site", map[string]string{"a": "3"}))
	projects, err = r.ListProjects("alice")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "3", "b": "2"}, projects["site"].Files)
}

func TestUploadFiles_Errors(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw")

	err := r.UploadFiles("alice", "missing", map[string]string{"a": "1"})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	err = r.UploadFiles("nobody", "site", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateProject_OverwritesFiles(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw")
	require.NoError(t, r.CreateProject("alice", "site"))
	require.NoError(t, r.UploadFiles("alice", "site", map[string]string{"a": "1"}))

	require.NoError(t, r.CreateProject("alice", "site"))

	_, err := r.GetFile("alice", "site", "a")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestGetFile(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw")
	require.NoError(t, r.CreateProject("alice", "site"))
	require.NoError(t, r.UploadFiles("alice", "site", map[string]string{"index.html": "<h1>hi</h1>", "empty": ""}))

	content, err := r.GetFile("alice", "site", "index.html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>hi</h1>", content)

	content, err = r.GetFile("alice", "site", "empty")
	require.NoError(t, err)
	assert.Equal(t, "", content)

	_, err = r.GetFile("bob", "site", "index.html")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = r.GetFile("alice", "blog", "index.html")
	assert.ErrorIs(t, err, ErrProjectNotFound)
	_, err = r.GetFile("alice", "site", "about.html")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestListProjects_ReturnsCopies(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw")
	require.NoError(t, r.CreateProject("alice", "site"))

	projects, err := r.ListProjects("alice")
	require.NoError(t, err)
	projects["site"].Files["x"] = "y"

	_, err = r.GetFile("alice", "site", "x")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDumpAndStats(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw1")
	r.CreateUser("bob", "pw2")
	require.NoError(t, r.CreateProject("alice", "site"))
	require.NoError(t, r.CreateProject("bob", "blog"))
	require.NoError(t, r.UploadFiles("alice", "site", map[string]string{"a": "1", "b": "2"}))

	dump := r.Dump()
	require.Len(t, dump, 2)
	assert.Equal(t, "pw1", dump["alice"].Password)
	assert.Equal(t, "2", dump["bob"].ID)

	stats := r.Stats()
	assert.Equal(t, 2, stats.Users)
	assert.Equal(t, 2, stats.Projects)
	assert.Equal(t, 2, stats.Files)
}

func TestConcurrentUploads(t *testing.T) {
	r := NewRepository()
	r.CreateUser("alice", "pw")
	require.NoError(t, r.CreateProject("alice", "site"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := strconv.Itoa(i)
			assert.NoError(t, r.UploadFiles("alice", "site", map[string]string{key: key}))
			_, _ = r.ListProjects("alice")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, r.Stats().Files)
}

func TestFindUserByToken_DuplicateIDIntegerUsernameFirst(t *testing.T) {
	r := NewRepository()
	r.CreateUser("b", "pw") // 1
	r.CreateUser("b", "pw") // 2
	r.CreateUser("5", "pw") // 2

	u, err := r.FindUserByToken("2")
	require.NoError(t, err)
	assert.Equal(t, "5", u.Username)
}

func TestKeyBefore(t *testing.T) {
	r := NewRepository()
	r.CreateUser("zed", "pw")
	r.CreateUser("amy", "pw")
	r.CreateUser("10", "pw")
	r.CreateUser("9", "pw")
	r.CreateUser("007", "pw")

	tests := []struct {
		a, b string
		want bool
	}{
		{"9", "10", true},
		{"10", "9", false},
		{"10", "zed", true},
		{"zed", "9", false},
		{"zed", "amy", true},
		{"amy", "zed", false},
		{"007", "zed", false}, // leading zero is not integer-like
		{"9", "007", true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, r.keyBefore(tc.a, tc.b), "%s before %s", tc.a, tc.b)
	}
}

func TestArrayIndex(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"42", true},
		{"4294967294", true},
		{"4294967295", false},
		{"01", false},
		{"-1", false},
		{"", false},
		{"1.5", false},
		{"abc", false},
	}
	for _, tc := range tests {
		_, ok := arrayIndex(tc.in)
		assert.Equal(t, tc.want, ok, tc.in)
	}
}
