package mysql

const upsertDestinationSQL = `
INSERT INTO destinations (name, lat, lng, country)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  lat = VALUES(lat),
  lng = VALUES(lng),
  country = COALESCE(VALUES(country), country),
  updated_at = CURRENT_TIMESTAMP
`

const lookupDestinationSQL = `
SELECT lat, lng
FROM destinations
WHERE name = ?
`

// one row per name; repeated misses bump the counter
const insertMissSQL = `
INSERT INTO destination_misses (name, reason, hits)
VALUES (?, ?, 1)
ON DUPLICATE KEY UPDATE
  reason = VALUES(reason),
  hits = hits + 1,
  last_seen_at = CURRENT_TIMESTAMP
`

const listDestinationsSQL = `
SELECT name, lat, lng, country
FROM destinations
ORDER BY name
LIMIT ?
`
