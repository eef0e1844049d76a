// Package migration implements the second launch step: bringing the database
// schema up to date before the server binds its port.
//
// Two modes are supported. In command mode an external migration tool (for
// example "flask db upgrade" or "alembic upgrade head") runs with the
// environment the secrets step populated, and its exit code becomes the
// launcher's. In sql mode the launcher applies a directory of golang-migrate
// "<version>_<name>.up.sql" files itself against MySQL or SQLite.
//
// A dirty schema (a previous migration failed halfway) stops the launch; it
// needs a human.
package migration
