package mysql

const insertVillaSQL = `
INSERT INTO villas
  (title, city, address, base_capacity, maximum_capacity, area, bed_count,
   has_pool, has_cooling_system, base_price_per_night, extra_person_price, rating, images)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateVillaSQL = `
UPDATE villas SET
  title                = ?,
  city                 = ?,
  address              = ?,
  base_capacity        = ?,
  maximum_capacity     = ?,
  area                 = ?,
  bed_count            = ?,
  has_pool             = ?,
  has_cooling_system   = ?,
  base_price_per_night = ?,
  extra_person_price   = ?,
  rating               = ?,
  images               = ?,
  updated_at           = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteVillaSQL = `DELETE FROM villas WHERE id = ?`

const villaColumns = `
  id, title, city, address, base_capacity, maximum_capacity, area, bed_count,
  has_pool, has_cooling_system, base_price_per_night, extra_person_price, rating, images`

const getVillaSQL = `SELECT` + villaColumns + `
FROM villas
WHERE id = ?
`

// Optional filters AND together; listing order is creation order (id ASC).
const listVillasSQL = `SELECT` + villaColumns + `
FROM villas
WHERE (? IS NULL OR city = ?)
  AND (? IS NULL OR maximum_capacity >= ?)
  AND (? IS NULL OR base_price_per_night <= ?)
ORDER BY id
`

const insertReservationSQL = `
INSERT INTO reservations
  (user_id, villa_id, check_in_date, check_out_date, people_count, total_price)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const reservationColumns = `
  id, user_id, villa_id, check_in_date, check_out_date, people_count, total_price`

// Ownership is part of the key: a mismatch scans as no rows, so callers
// cannot tell another user's reservation apart from a missing one.
const getOwnedReservationSQL = `SELECT` + reservationColumns + `
FROM reservations
WHERE id = ? AND user_id = ?
`

const listReservationsByUserSQL = `SELECT` + reservationColumns + `
FROM reservations
WHERE user_id = ?
ORDER BY id
`

const insertUserSQL = `
INSERT INTO users (name, email, phone_number, role, password_hash)
VALUES (?, ?, ?, ?, ?)
`

const userColumns = ` id, name, email, phone_number, role, password_hash`

const getUserByEmailSQL = `SELECT` + userColumns + ` FROM users WHERE email = ?`

const getUserByIDSQL = `SELECT` + userColumns + ` FROM users WHERE id = ?`
