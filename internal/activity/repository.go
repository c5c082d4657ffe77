package activity

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type logRow struct {
	ID            int       `db:"id"`
	AdminID       int       `db:"admin_id"`
	AdminUsername string    `db:"admin_username"`
	AdminEmail    string    `db:"admin_email"`
	AdminGymName  string    `db:"admin_gym_name"`
	Action        string    `db:"action"`
	Timestamp     time.Time `db:"timestamp"`
	IPAddress     string    `db:"ip_address"`
	DeviceInfo    string    `db:"device_info"`
	LocCity       *string   `db:"loc_city"`
	LocRegion     *string   `db:"loc_region"`
	LocCountry    *string   `db:"loc_country"`
	LocLat        *float64  `db:"loc_lat"`
	LocLon        *float64  `db:"loc_lon"`
}

func (row logRow) toLog() Log {
	l := Log{
		ID:      row.ID,
		AdminID: row.AdminID,
		Admin: AdminRef{
			Username: row.AdminUsername,
			Email:    row.AdminEmail,
			GymName:  row.AdminGymName,
		},
		Action:     row.Action,
		Timestamp:  row.Timestamp,
		IPAddress:  row.IPAddress,
		DeviceInfo: row.DeviceInfo,
	}

	if row.LocCity != nil || row.LocCountry != nil {
		loc := Location{}
		if row.LocCity != nil {
			loc.City = *row.LocCity
		}
		if row.LocRegion != nil {
			loc.Region = *row.LocRegion
		}
		if row.LocCountry != nil {
			loc.Country = *row.LocCountry
		}
		if row.LocLat != nil {
			loc.Lat = *row.LocLat
		}
		if row.LocLon != nil {
			loc.Lon = *row.LocLon
		}
		l.Location = &loc
	}

	return l
}

func (r *repository) Insert(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO activity_logs (admin_id, action, ip_address, device_info, loc_city, loc_region, loc_country, loc_lat, loc_lon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var city, region, country *string
	var lat, lon *float64
	if entry.Location != nil {
		city = &entry.Location.City
		region = &entry.Location.Region
		country = &entry.Location.Country
		lat = &entry.Location.Lat
		lon = &entry.Location.Lon
	}

	_, err := r.db.ExecContext(ctx, query,
		entry.AdminID, entry.Action, entry.IPAddress, entry.DeviceInfo,
		city, region, country, lat, lon,
	)
	return err
}

func (r *repository) List(ctx context.Context, search, action string) ([]Log, error) {
	query := `
		SELECT l.id, l.admin_id, a.username AS admin_username, a.email AS admin_email,
		       a.gym_name AS admin_gym_name, l.action, l.timestamp, l.ip_address,
		       l.device_info, l.loc_city, l.loc_region, l.loc_country, l.loc_lat, l.loc_lon
		FROM activity_logs l
		JOIN admins a ON a.id = l.admin_id
	`
	args := []interface{}{}

	where := ""
	if search != "" {
		where = ` WHERE (a.username ILIKE $1 OR a.email ILIKE $1 OR a.gym_name ILIKE $1 OR l.action ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	if action != "" {
		if where == "" {
			where = ` WHERE l.action = $1`
		} else {
			where += ` AND l.action = $2`
		}
		args = append(args, action)
	}

	query += where + ` ORDER BY l.timestamp DESC`

	var rows []logRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	logs := make([]Log, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toLog())
	}

	return logs, nil
}
