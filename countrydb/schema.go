package countrydb

const mysqlSchema = `CREATE TABLE IF NOT EXISTS %s (
    id bigint(20) unsigned NOT NULL AUTO_INCREMENT COMMENT 'ID Zone-Country',
    zone varchar(255) NOT NULL DEFAULT '' COMMENT 'Zone',
    country varchar(255) NOT NULL DEFAULT '' COMMENT 'Country name',
    isocode char(2) NOT NULL DEFAULT '' COMMENT 'ISO CODE',
    currency varchar(255) NOT NULL DEFAULT '' COMMENT 'Currency',
    symbol varchar(10) NOT NULL DEFAULT '' COMMENT 'Currency symbol',
    symbol_html varchar(10) NOT NULL DEFAULT '' COMMENT 'HTML currency symbol',
    code char(3) NOT NULL DEFAULT '' COMMENT 'Code',
    tax decimal(8,2) NOT NULL DEFAULT '0.00' COMMENT 'Tax',
    continent varchar(20) NOT NULL DEFAULT '' COMMENT 'Continent',
    status enum('publish','trash') NOT NULL DEFAULT 'publish' COMMENT 'Status of record',
    PRIMARY KEY (id),
    KEY status (status)
) DEFAULT CHARSET=utf8mb4`

// sqlite has no enum and no column comments, CHECK keeps the status
// domain.
const sqliteSchema = `CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    zone TEXT NOT NULL DEFAULT '',
    country TEXT NOT NULL DEFAULT '',
    isocode TEXT NOT NULL DEFAULT '',
    currency TEXT NOT NULL DEFAULT '',
    symbol TEXT NOT NULL DEFAULT '',
    symbol_html TEXT NOT NULL DEFAULT '',
    code TEXT NOT NULL DEFAULT '',
    tax REAL NOT NULL DEFAULT 0,
    continent TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'publish' CHECK (status IN ('publish', 'trash'))
)`

const sqliteIndex = `CREATE INDEX IF NOT EXISTS idx_%s_status ON %s(status)`
