package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMK Nusantara Tech CMS API",
        "description": "Layanan konten publik, administrasi, dan pendaftaran SPMB",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Auth", "description": "Login admin dan profil"},
        {"name": "Public", "description": "Konten publik: alumni, testimoni, artikel, kalender"},
        {"name": "Contact", "description": "Informasi kontak dan pesan masuk"},
        {"name": "SPMB", "description": "Pendaftaran siswa baru"},
        {"name": "Admin Articles", "description": "Manajemen artikel dan kategori"},
        {"name": "Admin SPMB", "description": "Verifikasi pendaftaran SPMB"},
        {"name": "Admin", "description": "Dasbor dan utilitas admin"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/health": {
            "get": {
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/health/ready": {
            "get": {
                "summary": "Readiness check (database and redis)",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Backing store unavailable"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Kredensial salah", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/admin/profile": {
            "get": {
                "tags": ["Auth"],
                "summary": "Profil admin yang sedang login",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/public/alumni": {
            "get": {
                "tags": ["Public"],
                "summary": "Daftar alumni unggulan",
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/public/testimoni": {
            "get": {
                "tags": ["Public"],
                "summary": "Daftar testimoni",
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/public/articles": {
            "get": {
                "tags": ["Public"],
                "summary": "Daftar artikel terbit",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "kategori", "in": "query", "type": "string"},
                    {"name": "featured", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/public/articles/{slug}": {
            "get": {
                "tags": ["Public"],
                "summary": "Detail artikel",
                "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Tidak ditemukan", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/public/articles/categories": {
            "get": {
                "tags": ["Public"],
                "summary": "Daftar kategori artikel",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/calendar/public/events": {
            "get": {
                "tags": ["Public"],
                "summary": "Kalender akademik terbit",
                "parameters": [
                    {"name": "tahun_ajaran", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "jenis_kegiatan", "in": "query", "type": "string"},
                    {"name": "bulan", "in": "query", "type": "integer"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/contact/info": {
            "get": {
                "tags": ["Contact"],
                "summary": "Informasi kontak sekolah",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/contact/message": {
            "post": {
                "tags": ["Contact"],
                "summary": "Kirim pesan",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContactMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Tersimpan", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validasi gagal", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/spmb/school-info": {
            "get": {
                "tags": ["SPMB"],
                "summary": "Profil sekolah dan status pendaftaran",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/spmb/form-config": {
            "get": {
                "tags": ["SPMB"],
                "summary": "Konfigurasi formulir: jurusan, pembayaran, dokumen wajib",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/spmb/register": {
            "post": {
                "tags": ["SPMB"],
                "summary": "Daftar siswa baru (multipart dengan dokumen)",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Terdaftar", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validasi gagal", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Pendaftaran ditutup", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/spmb/receipt/{token}": {
            "get": {
                "tags": ["SPMB"],
                "summary": "Unduh bukti pendaftaran (tautan bertanda tangan)",
                "produces": ["application/pdf"],
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "PDF"},
                    "403": {"description": "Token tidak valid"},
                    "404": {"description": "Bukti belum tersedia"}
                }
            }
        },
        "/api/admin/articles": {
            "get": {
                "tags": ["Admin Articles"],
                "summary": "Daftar artikel (termasuk draf)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "post": {
                "tags": ["Admin Articles"],
                "summary": "Buat artikel",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "responses": {"201": {"description": "Dibuat", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/admin/articles/{id}": {
            "get": {
                "tags": ["Admin Articles"],
                "summary": "Detail artikel",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "put": {
                "tags": ["Admin Articles"],
                "summary": "Perbarui artikel",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "delete": {
                "tags": ["Admin Articles"],
                "summary": "Hapus artikel",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "Dihapus", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/admin/articles/{id}/publish": {
            "post": {
                "tags": ["Admin Articles"],
                "summary": "Terbitkan atau tarik artikel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/admin/articles/{id}/feature": {
            "post": {
                "tags": ["Admin Articles"],
                "summary": "Tandai atau lepas artikel unggulan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/admin/articles/manage/categories": {
            "get": {
                "tags": ["Admin Articles"],
                "summary": "Daftar kategori",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "post": {
                "tags": ["Admin Articles"],
                "summary": "Buat kategori",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Dibuat", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/admin/spmb/registrations": {
            "get": {
                "tags": ["Admin SPMB"],
                "summary": "Daftar pendaftaran",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/admin/spmb/registrations/{id}": {
            "get": {
                "tags": ["Admin SPMB"],
                "summary": "Detail pendaftaran beserta dokumen",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "delete": {
                "tags": ["Admin SPMB"],
                "summary": "Hapus pendaftaran (soft delete)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "Dihapus", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/admin/spmb/registrations/{id}/status": {
            "put": {
                "tags": ["Admin SPMB"],
                "summary": "Ubah status pendaftaran",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StatusUpdateRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/admin/spmb/registrations/export": {
            "get": {
                "tags": ["Admin SPMB"],
                "summary": "Ekspor pendaftaran ke CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "responses": {"200": {"description": "CSV"}}
            }
        },
        "/api/admin/spmb/download-package/{id}": {
            "get": {
                "tags": ["Admin SPMB"],
                "summary": "Unduh paket dokumen pendaftar (ZIP)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/zip"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "ZIP"}}
            }
        },
        "/api/admin/dashboard-stats": {
            "get": {
                "tags": ["Admin"],
                "summary": "Statistik dasbor",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "remember_me": {"type": "boolean"}
            }
        },
        "ContactMessageRequest": {
            "type": "object",
            "required": ["nama", "email", "kategori", "pesan"],
            "properties": {
                "nama": {"type": "string"},
                "email": {"type": "string"},
                "telepon": {"type": "string"},
                "kategori": {"type": "string"},
                "pesan": {"type": "string"}
            }
        },
        "ToggleRequest": {
            "type": "object",
            "properties": {
                "is_published": {"type": "boolean"},
                "is_featured": {"type": "boolean"}
            }
        },
        "StatusUpdateRequest": {
            "type": "object",
            "required": ["status_pendaftaran"],
            "properties": {
                "status_pendaftaran": {"type": "string", "enum": ["pending", "diterima", "ditolak", "cadangan"]},
                "catatan": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
