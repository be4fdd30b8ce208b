package videos

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/musicvideos/internal/common"
	"github.com/dmitrijs2005/musicvideos/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+music_videos\s*\(title,\s*artist,\s*url,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at\s*$`
	listQuery   = `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*artist,\s*url,\s*created_at\s+FROM\s+music_videos\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s*$`
	getQuery    = `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*artist,\s*url,\s*created_at\s+FROM\s+music_videos\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`
	updateQuery = `(?s)^UPDATE\s+music_videos\s+SET\s+title\s*=\s*\$1,\s*artist\s*=\s*\$2,\s*url\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$4\s+AND\s+user_id\s*=\s*\$5\s*$`
	deleteQuery = `(?s)^DELETE\s+FROM\s+music_videos\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`
)

var (
	t1 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 = time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func videoColumns() []string {
	return []string{"id", "user_id", "title", "artist", "url", "created_at"}
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).
		WithArgs("Take On Me", "a-ha", "https://youtu.be/djV11Xbc914", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), t1))

	got, err := repo.Create(context.Background(), &models.MusicVideo{
		UserID: 1, Title: "Take On Me", Artist: "a-ha", URL: "https://youtu.be/djV11Xbc914",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, t1, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.MusicVideo{UserID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows(videoColumns()).
		AddRow(int64(2), int64(1), "B", "Artist B", "https://b.example", t2).
		AddRow(int64(1), int64(1), "A", "Artist A", "https://a.example", t1)
	mock.ExpectQuery(listQuery).WithArgs(int64(1)).WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)

	want := []*models.MusicVideo{
		{ID: 2, UserID: 1, Title: "B", Artist: "Artist B", URL: "https://b.example", CreatedAt: t2},
		{ID: 1, UserID: 1, Title: "A", Artist: "Artist A", URL: "https://a.example", CreatedAt: t1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("videos mismatch (-want +got):\n%s", diff)
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WithArgs(int64(3)).WillReturnRows(sqlmock.NewRows(videoColumns()))

	got, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WithArgs(int64(1)).WillReturnError(errors.New("boom"))
	_, err := repo.ListByUser(context.Background(), 1)
	require.Error(t, err)

	rows := sqlmock.NewRows(videoColumns()).
		AddRow(int64(1), int64(1), "A", "Artist", "https://a", t1).
		RowError(0, errors.New("row broke"))
	mock.ExpectQuery(listQuery).WithArgs(int64(1)).WillReturnRows(rows)
	_, err = repo.ListByUser(context.Background(), 1)
	require.Error(t, err)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(getQuery).WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows(videoColumns()).AddRow(int64(5), int64(1), "T", "A", "https://x", t1))
	mock.ExpectQuery(getQuery).WithArgs(int64(5), int64(2)).WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)

	_, err = repo.Get(context.Background(), 2, 5)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(updateQuery).WithArgs("T2", "A2", "https://y", int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateQuery).WithArgs("T2", "A2", "https://y", int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	v := &models.MusicVideo{ID: 5, UserID: 1, Title: "T2", Artist: "A2", URL: "https://y"}
	require.NoError(t, repo.Update(context.Background(), v))

	v.UserID = 2
	assert.ErrorIs(t, repo.Update(context.Background(), v), common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQuery).WithArgs(int64(5), int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQuery).WithArgs(int64(6), int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteQuery).WithArgs(int64(7), int64(1)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(deleteQuery).WithArgs(int64(8), int64(1)).WillReturnError(errors.New("db err"))

	require.NoError(t, repo.Delete(context.Background(), 1, 5))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1, 6), common.ErrorNotFound)
	assert.ErrorContains(t, repo.Delete(context.Background(), 1, 7), "unexpected rows affected: 2")
	assert.ErrorContains(t, repo.Delete(context.Background(), 1, 8), "db err")
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		field   SearchField
		term    string
		pattern string
		column  string
	}{
		{"title", SearchTitle, "take", "%take%", "title"},
		{"artist", SearchArtist, "A-HA", "%A-HA%", "artist"},
		{"wildcards are literal", SearchTitle, `100%_\`, `%100\%\_\\%`, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)

			query := `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*artist,\s*url,\s*created_at\s+FROM\s+music_videos\s+` +
				`WHERE\s+user_id\s*=\s*\$1\s+AND\s+` + tt.column + `\s+ILIKE\s+\$2\s+ESCAPE\s+'\\'\s+` +
				`ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s*$`

			mock.ExpectQuery(query).
				WithArgs(int64(1), tt.pattern).
				WillReturnRows(sqlmock.NewRows(videoColumns()).
					AddRow(int64(2), int64(1), "Take On Me", "a-ha", "https://youtu.be/djV11Xbc914", t2))

			got, err := repo.Search(context.Background(), 1, tt.field, tt.term)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, int64(2), got[0].ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSearch_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.Search(context.Background(), 1, SearchField("url"), "x")
	assert.ErrorContains(t, err, "unknown search field")

	mock.ExpectQuery(`(?s)^SELECT.+ILIKE`).WillReturnError(errors.New("db down"))
	_, err = repo.Search(context.Background(), 1, SearchArtist, "x")
	assert.ErrorContains(t, err, "db down")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%%", containsPattern(""))
	assert.Equal(t, "%queen%", containsPattern("queen"))
	assert.Equal(t, `%a\_b\%c\\d%`, containsPattern(`a_b%c\d`))
}
